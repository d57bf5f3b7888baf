package config

import "errors"

// validation errors returned by [StructuredConfig.validate].
var (
	ErrNoTokenSignKey   = errors.New("token sign key is required")
	ErrNoTokenIssuer    = errors.New("token issuer is required")
	ErrNoTokenDuration  = errors.New("token duration is required")
	ErrNoAttestationKey = errors.New("oracle attestation key is required")
	ErrNoServerAddress  = errors.New("server address is required")
)

// validate checks that the merged configuration is complete enough to start
// the server. The database DSN is intentionally optional: an empty DSN
// selects the in-memory store.
func (c *StructuredConfig) validate() error {
	var errs []error

	if c.App.TokenSignKey == "" {
		errs = append(errs, ErrNoTokenSignKey)
	}
	if c.App.TokenIssuer == "" {
		errs = append(errs, ErrNoTokenIssuer)
	}
	if c.App.TokenDuration <= 0 {
		errs = append(errs, ErrNoTokenDuration)
	}
	if c.Oracle.AttestationKey == "" {
		errs = append(errs, ErrNoAttestationKey)
	}
	if c.Server.HTTPAddress == "" {
		errs = append(errs, ErrNoServerAddress)
	}

	return errors.Join(errs...)
}
