package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingrsvp/internal/database"
	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/repository"
	"weddingrsvp/internal/security"
	"weddingrsvp/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// LoginResult is returned to the admin after a successful login
type LoginResult struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"-"`
}

// AuthService handles admin authentication
type AuthService struct {
	db        *database.DB
	adminRepo *repository.AdminRepository
	tokens    *security.TokenService
	log       *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(db *database.DB, adminRepo *repository.AdminRepository, tokens *security.TokenService, log *logger.Logger) *AuthService {
	return &AuthService{
		db:        db,
		adminRepo: adminRepo,
		tokens:    tokens,
		log:       log,
	}
}

// Login checks the admin credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := validation.ValidateLogin(email, password); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)

	admin, err := s.adminRepo.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	if admin == nil || !security.CheckPassword(password, admin.PasswordHash) {
		s.log.Warn("Failed admin login", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(admin.Email)
	if err != nil {
		return nil, err
	}

	s.log.Info("Admin logged in", "email", admin.Email)
	return &LoginResult{Token: token, Email: admin.Email, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to the admin email it was issued for.
// Every failure is reported as ErrUnauthorized.
func (s *AuthService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		s.log.Debug("Rejected admin token", "error", err)
		return "", ErrUnauthorized
	}
	return claims.Email, nil
}

// ProvisionAdmin creates the admin credential or resets its password.
// It reports true when a new admin was created.
func (s *AuthService) ProvisionAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if err := validation.ValidateEmail(email); err != nil {
		return false, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return false, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	var created bool
	err = s.db.WithTx(ctx, func(tx *database.Tx) error {
		var err error
		created, err = s.adminRepo.WithTx(tx).UpsertAdmin(ctx, email, hash, time.Now().UTC())
		return err
	})
	err = keepCommitted(s.log, err)
	if err != nil {
		return false, err
	}

	s.log.Info("Admin provisioned", "email", email, "created", created)
	return created, nil
}
