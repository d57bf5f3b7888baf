package service

import (
	"context"
	"testing"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/internal/config"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (AuthService, *store.MemoryStore) {
	t.Helper()

	memory := store.NewMemoryStore()
	cfg := config.App{
		PasswordHashSalt: "test-salt",
		TokenSignKey:     "test-sign-key",
		TokenIssuer:      "cipher-ledger-test",
		TokenDuration:    time.Hour,
	}

	return NewAuthService(memory, cfg, logger.Nop()), memory
}

func TestRegisterUser(t *testing.T) {
	auth, memory := newTestAuthService(t)
	ctx := context.Background()

	registered, err := auth.RegisterUser(ctx, models.User{Login: "alice", AuthHash: "secret", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)

	// the plaintext password never reaches storage
	stored, err := memory.FindUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.AuthHash)
	assert.Len(t, stored.AuthHash, 64) // hex of a 32-byte argon2id digest
}

func TestRegisterUser_InvalidData(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.RegisterUser(ctx, models.User{Login: "", AuthHash: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = auth.RegisterUser(ctx, models.User{Login: "alice", AuthHash: ""})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_DuplicateLogin(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.RegisterUser(ctx, models.User{Login: "alice", AuthHash: "secret"})
	require.NoError(t, err)

	_, err = auth.RegisterUser(ctx, models.User{Login: "alice", AuthHash: "other"})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestLogin(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.RegisterUser(ctx, models.User{Login: "alice", AuthHash: "secret"})
	require.NoError(t, err)

	logged, err := auth.Login(ctx, models.User{Login: "alice", AuthHash: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), logged.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.RegisterUser(ctx, models.User{Login: "alice", AuthHash: "secret"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, models.User{Login: "alice", AuthHash: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownLogin(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), models.User{Login: "bob", AuthHash: "secret"})
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestToken_RoundTrip(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := auth.CreateToken(ctx, models.User{UserID: 42, Login: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := auth.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestParseToken_Invalid(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
