package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studio-backend/internal/mailer"
	"studio-backend/internal/models"
	"studio-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// LoginNotifier sends the admin login alert in the background
type LoginNotifier interface {
	NotifyAdminLogin(ctx context.Context, details mailer.LoginDetails) mailer.Result
	Dispatch(ctx context.Context, fn func(ctx context.Context))
}

// AuthService handles Command Center authentication
type AuthService struct {
	adminRepo *repository.AdminRepository
	notifier  LoginNotifier
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service. An empty jwtSecret disables
// token issuance.
func NewAuthService(adminRepo *repository.AdminRepository, notifier LoginNotifier, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		adminRepo: adminRepo,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginMeta describes the client that attempted the login
type LoginMeta struct {
	IP        string
	UserAgent string
}

// LoginResult is returned on successful login
type LoginResult struct {
	Admin models.AdminSummary
	Token string
}

// TokensEnabled reports whether admin routes are guarded by tokens
func (s *AuthService) TokensEnabled() bool {
	return s.jwtSecret != ""
}

// Login verifies credentials against the active admins. Every failure maps to
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string, meta LoginMeta) (*LoginResult, error) {
	if _, err := s.adminRepo.EnsureDefault(ctx); err != nil {
		return nil, fmt.Errorf("failed to provision admin: %w", err)
	}

	admin, err := s.adminRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn().Str("email", email).Msg("Login rejected: unknown or inactive admin")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}

	result := &LoginResult{Admin: admin.Summary()}
	if s.TokensEnabled() {
		token, err := s.GenerateJWT(admin.ID)
		if err != nil {
			return nil, err
		}
		result.Token = token
	}

	if s.notifier != nil {
		details := mailer.NewLoginDetails(admin.Email, meta.IP, meta.UserAgent)
		s.notifier.Dispatch(ctx, func(ctx context.Context) {
			s.notifier.NotifyAdminLogin(ctx, details)
		})
	}

	log.Info().Str("admin_id", admin.ID).Msg("Admin logged in")
	return result, nil
}

// GenerateJWT generates a token for an admin
func (s *AuthService) GenerateJWT(adminID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"admin_id": adminID,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateJWT validates a token and returns the admin ID
func (s *AuthService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	adminID, ok := claims["admin_id"].(string)
	if !ok {
		return "", fmt.Errorf("admin_id not found in token")
	}
	return adminID, nil
}
