package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/auth"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/model"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmptyFields        = errors.New("username, password, and email cannot be empty")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrAlreadyCompleted   = errors.New("task already completed today")
)

type Service struct {
	repo   *repository.Repository
	codec  *auth.Codec
	issuer *auth.Issuer
}

func NewService(repo *repository.Repository, codec *auth.Codec, issuer *auth.Issuer) *Service {
	return &Service{repo: repo, codec: codec, issuer: issuer}
}

// Register creates a user with the default role and issues its first
// token pair.
func (s *Service) Register(username, email, password string) (*model.User, *auth.TokenPair, error) {
	user, err := s.CreateUser(username, email, password)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuer.IssuePair(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// CreateUser is the registration body without token issuance; the
// admin user-creation path uses it directly.
func (s *Service) CreateUser(username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrEmptyFields
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.repo.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email taken", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies a login. The identifier is an email when it
// contains "@", a username otherwise. Unknown identifier and wrong
// password produce the same error so a caller cannot probe which
// accounts exist.
func (s *Service) Authenticate(identifier, password string) (*model.User, error) {
	var (
		user *model.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.repo.GetUserByEmail(identifier)
	} else {
		user, err = s.repo.GetUserByUsername(identifier)
	}
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) Login(identifier, password string) (*auth.TokenPair, error) {
	user, err := s.Authenticate(identifier, password)
	if err != nil {
		return nil, err
	}
	return s.issuer.IssuePair(user)
}

// UserFromToken recovers the acting user from a bearer token, checking
// signature, expiry, token type and subject in that order.
func (s *Service) UserFromToken(tokenString string, expected auth.TokenType) (*model.User, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != expected {
		return nil, ErrInvalidTokenType
	}

	if claims.Subject == "" {
		return nil, auth.ErrInvalidToken
	}

	user, err := s.repo.GetUserByUsername(claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up token subject: %w", err)
	}

	return user, nil
}

// Refresh rotates a refresh token into a fresh pair. The presented
// refresh token is not invalidated and stays usable until its own
// expiry; tokens are never stored server-side.
func (s *Service) Refresh(refreshToken string) (*auth.TokenPair, error) {
	user, err := s.UserFromToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return s.issuer.IssuePair(user)
}

func (s *Service) RequireRole(user *model.User, role model.Role) error {
	if user.Role != role {
		return ErrForbidden
	}
	return nil
}

func (s *Service) ListUsers() ([]model.User, error) {
	return s.repo.ListUsers()
}

func (s *Service) GetUser(id uint) (*model.User, error) {
	user, err := s.repo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}
