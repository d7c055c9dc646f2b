package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/mycarexpenses-be/internal/auth"
	"github.com/isdelr/mycarexpenses-be/internal/database"
	"github.com/isdelr/mycarexpenses-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (string, models.UserSummary, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
}

// UserService provides registration, login and lookup of users.
type UserService struct {
	db         *sql.DB
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, tokens *auth.TokenManager, bcryptCost int) *UserService {
	return &UserService{db: db, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a new user, hashing their password. Duplicate usernames
// and emails are rejected by the UNIQUE constraints of the users table.
func (s *UserService) Register(ctx context.Context, username, email, password string) (int64, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return 0, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return 0, fmt.Errorf("%w: password is too long", ErrValidation)
		}
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email, hashed_password) VALUES (?, ?, ?)",
		username, email, string(hashedPassword),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// getUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) getUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT user_id, username, email, hashed_password FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: user with email %s", ErrNotFound, email)
		}
		return models.User{}, err
	}
	return user, nil
}

// Login verifies a user's credentials and issues a token. Unknown email
// and wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (string, models.UserSummary, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", models.UserSummary{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", models.UserSummary{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return "", models.UserSummary{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.UserSummary{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	token, err := s.tokens.GenerateJWT(user)
	if err != nil {
		return "", models.UserSummary{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user.Summary(), nil
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT user_id, username, email FROM users WHERE user_id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return models.User{}, err
	}
	return user, nil
}
