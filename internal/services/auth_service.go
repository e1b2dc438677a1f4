// Package services – AuthService
//
// Implements signup and login. Passwords are stored as bcrypt hashes only;
// successful logins are issued a short-lived HS256 JWT whose subject is the
// numeric user id. Token parsing for the auth middleware lives here too so
// the secret never leaves this package.
package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/repo"
)

// AuthService issues and validates access tokens and manages user accounts.
type AuthService struct {
	DB *gorm.DB
	// Secret signs and verifies HS256 tokens.
	Secret []byte
	// TokenTTL bounds token lifetime (e.g. 1h).
	TokenTTL time.Duration
}

// TokenPair is the login response payload.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup registers a new account. Fails with Validation on blank
// username/password and Conflict when the username is taken.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.NewValidationError("Username cannot be empty", nil)
	}
	if len(password) < 8 {
		return nil, domain.NewValidationError(
			"Password must be at least 8 characters",
			map[string]any{"requirement": "minimum length 8"},
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to create user", nil, err)
	}
	u := &domain.User{Username: username, PasswordHash: string(hash)}
	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		if isDuplicate(err) {
			return nil, domain.NewConflictError("Username already taken",
				map[string]any{"username": username})
		}
		return nil, domain.NewDatabaseError("Failed to create user",
			map[string]any{"username": username}, err)
	}
	return u, nil
}

// Login verifies the credentials and returns a signed access token. Bad
// username and bad password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	u, err := repo.GetUserByUsername(ctx, s.DB, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, domain.NewDatabaseError("Failed to authenticate user", nil, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errInvalidCredentials()
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(u.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to issue access token", nil, err)
	}
	return &TokenPair{AccessToken: tok, TokenType: "bearer"}, nil
}

// UserIDFromToken validates a bearer token and returns the user id it names.
// Any parse, signature, or expiry failure yields an Unauthorized error.
func (s *AuthService) UserIDFromToken(tokenString string) (int, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !tok.Valid {
		return 0, domain.NewUnauthorizedError("Invalid authentication credentials", nil)
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, domain.NewUnauthorizedError("Invalid authentication credentials", nil)
	}
	uid, err := strconv.Atoi(claims.Subject)
	if err != nil || uid <= 0 {
		return 0, domain.NewUnauthorizedError("Invalid authentication credentials", nil)
	}
	return uid, nil
}

func (s *AuthService) ttl() time.Duration {
	if s.TokenTTL <= 0 {
		return time.Hour
	}
	return s.TokenTTL
}

func errInvalidCredentials() *domain.Error {
	return domain.NewUnauthorizedError("Incorrect username or password", nil)
}
