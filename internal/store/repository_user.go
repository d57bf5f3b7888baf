package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of
// [UserRepository].
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts a new guardian account. A unique-violation on the login
// column maps to [ErrLoginAlreadyExists].
func (u *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var created models.User
	err := u.DB.QueryRowContext(ctx, saveUserQuery,
		user.Login,
		user.AuthHash,
		user.Name,
	).Scan(
		&created.UserID,
		&created.Login,
		&created.AuthHash,
		&created.Name,
		&created.CreatedAt,
	)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Warn().
				Str("func", "userRepository.CreateUser").
				Str("login", user.Login).
				Msg("login already exists")
			return models.User{}, ErrLoginAlreadyExists
		}

		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Str("login", user.Login).
			Msg("failed to insert user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByLogin returns the account for the given login.
func (u *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	err := u.DB.QueryRowContext(ctx, findUserByLoginQuery, login).Scan(
		&found.UserID,
		&found.Login,
		&found.AuthHash,
		&found.Name,
		&found.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.FindUserByLogin").
			Str("login", login).
			Msg("failed to query user by login")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}
