package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/priority-focus-api/internal/auth"
	"github.com/yukikurage/priority-focus-api/internal/constants"
	"github.com/yukikurage/priority-focus-api/internal/models"
	"github.com/yukikurage/priority-focus-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired        = errors.New("email is required")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrManagerNotFound      = errors.New("manager not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// AuthService handles registration, login and the manager's own profile.
type AuthService struct {
	managerRepo repository.ManagerRepository
	tokens      *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(managerRepo repository.ManagerRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		managerRepo: managerRepo,
		tokens:      tokens,
	}
}

// RegisterInput represents the required information to create a new manager.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is a manager together with a freshly issued bearer token.
type AuthResult struct {
	Manager   *models.Manager
	Token     string
	ExpiresAt time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new manager and signs them in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > constants.MaxNameLength {
		return nil, ErrNameTooLong
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.managerRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	manager := &models.Manager{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		Settings:     datatypes.JSONMap{},
	}

	if err := s.managerRepo.Create(ctx, manager); err != nil {
		// Lost a race against a concurrent registration for the same email
		if _, findErr := s.managerRepo.FindByEmail(ctx, email); findErr == nil {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}

	return s.issue(manager)
}

// Login validates credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	manager, err := s.managerRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find manager: %w", err)
	}

	if err := auth.ComparePassword(manager.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(manager)
}

// Me returns the authenticated manager.
func (s *AuthService) Me(ctx context.Context, managerID uint64) (*models.Manager, error) {
	manager, err := s.managerRepo.FindByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, fmt.Errorf("failed to find manager: %w", err)
	}
	return manager, nil
}

// UpdateSettings replaces the manager's settings object.
func (s *AuthService) UpdateSettings(ctx context.Context, managerID uint64, settings map[string]interface{}) (*models.Manager, error) {
	manager, err := s.managerRepo.UpdateSettings(ctx, managerID, datatypes.JSONMap(settings))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return manager, nil
}

func (s *AuthService) issue(manager *models.Manager) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateToken(manager.ID)
	if err != nil {
		return nil, ErrFailedToIssueToken
	}

	return &AuthResult{
		Manager:   manager,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
