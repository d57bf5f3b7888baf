package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EarlierSourcesWin(t *testing.T) {
	builder := newConfigBuilder()
	builder.configs = append(builder.configs,
		&StructuredConfig{
			App: App{TokenSignKey: "env-key"},
		},
		&StructuredConfig{
			App: App{
				TokenSignKey:  "json-key",
				TokenIssuer:   "cipher-ledger",
				TokenDuration: time.Hour,
			},
			Oracle: Oracle{AttestationKey: "attestation-key"},
			Server: Server{HTTPAddress: "localhost:8080"},
		},
	)

	cfg, err := builder.build()
	require.NoError(t, err)

	// the env value survives the merge, the json config fills the gaps
	assert.Equal(t, "env-key", cfg.App.TokenSignKey)
	assert.Equal(t, "cipher-ledger", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
}

func TestBuild_ValidatesMergedConfig(t *testing.T) {
	builder := newConfigBuilder()
	builder.configs = append(builder.configs, &StructuredConfig{
		App: App{TokenSignKey: "sign-key"},
	})

	_, err := builder.build()
	assert.ErrorIs(t, err, ErrNoTokenIssuer)
}

func TestBuild_PropagatesSourceError(t *testing.T) {
	builder := newConfigBuilder()
	builder.err = errors.New("source failed")

	_, err := builder.build()
	assert.ErrorContains(t, err, "source failed")
}

func TestWithJSON_ResolvesPathFromEarlierSource(t *testing.T) {
	path := writeConfigFile(t, `{"app": {"token_issuer": "from-json"}}`)

	builder := newConfigBuilder()
	builder.configs = append(builder.configs, &StructuredConfig{JSONFilePath: path})
	builder.withJSON()

	require.Len(t, builder.configs, 2)
	assert.Equal(t, "from-json", builder.configs[1].App.TokenIssuer)
}

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	builder := newConfigBuilder()
	builder.withJSON()

	assert.Empty(t, builder.configs)
	assert.NoError(t, builder.err)
}

func TestWithJSON_BadFileRecordsError(t *testing.T) {
	builder := newConfigBuilder()
	builder.configs = append(builder.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	builder.withJSON()

	assert.Error(t, builder.err)
}
