package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/task-tracker-api/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidPassword is returned when the supplied password does not
	// match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrOldPasswordIncorrect is returned when the current password supplied
	// to a reset does not match the stored hash.
	ErrOldPasswordIncorrect = errors.New("old password is incorrect")
	// ErrNewPasswordTooShort is returned when the replacement password fails
	// the length policy.
	ErrNewPasswordTooShort = errors.New("new password must be at least 6 characters long")
)

// minPasswordLength applies to password resets only. Registration accepts
// any password; the asymmetry matches the reference behavior.
const minPasswordLength = 6

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a new user account. The email is checked before the
// username, so when both collide the caller observes the email conflict.
func (s *AuthService) Register(_ context.Context, email, name, username, password string) (*domain.User, error) {
	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	exists, err = s.repo.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginResult holds the outcome of a successful login.
type LoginResult struct {
	Name        string
	AccessToken string
	ExpiresIn   int64
}

// Login verifies the credentials and issues a signed access token.
func (s *AuthService) Login(_ context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}

	token, err := s.jwt.Generate(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &LoginResult{
		Name:        user.Name,
		AccessToken: token,
		ExpiresIn:   s.jwt.TokenDuration(),
	}, nil
}

// ResetPassword re-authenticates the user with the old password and
// replaces the stored hash. The old-password check runs before the
// length policy on the new password. Tokens issued earlier stay valid
// until they expire.
func (s *AuthService) ResetPassword(_ context.Context, email, oldPassword, newPassword string) error {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return ErrOldPasswordIncorrect
	}

	if len(newPassword) < minPasswordLength {
		return ErrNewPasswordTooShort
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	if err := s.repo.Save(user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// ValidateToken validates an access token and returns claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID:   claims.Subject,
		Username: claims.Username,
	}, nil
}
