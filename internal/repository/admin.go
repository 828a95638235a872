package repository

import (
	"context"
	"fmt"

	"studio-backend/internal/models"
	"studio-backend/internal/store"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminsKey = "admins"

	// DefaultAdminPassword is the placeholder set on a freshly provisioned admin
	DefaultAdminPassword = "password"

	defaultAdminID    = "admin_1"
	defaultAdminName  = "Sagar Kajale"
	defaultAdminEmail = "shubhamkd.a02@gmail.com"
	passwordCost      = 10
)

// AdminRepository handles storage of the admins collection
type AdminRepository struct {
	store *store.Store
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(s *store.Store) *AdminRepository {
	return &AdminRepository{store: s}
}

// EnsureDefault provisions the default admin when the collection is empty.
// It reports whether an admin was created.
func (r *AdminRepository) EnsureDefault(ctx context.Context) (bool, error) {
	admins, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	if len(admins) > 0 {
		return false, nil
	}

	if _, err := r.writeDefault(ctx); err != nil {
		return false, err
	}
	log.Info().Str("admin_id", defaultAdminID).Msg("Default admin created")
	return true, nil
}

// ForceCreateDefault replaces the whole collection with a fresh default admin
func (r *AdminRepository) ForceCreateDefault(ctx context.Context) (*models.Admin, error) {
	admin, err := r.writeDefault(ctx)
	if err != nil {
		return nil, err
	}
	log.Warn().Str("admin_id", admin.ID).Msg("Admin collection reset to default admin")
	return admin, nil
}

// FindActiveByEmail returns the active admin with exactly this email
func (r *AdminRepository) FindActiveByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admins, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		if a.Email == email && a.IsActive {
			admin := a
			return &admin, nil
		}
	}
	return nil, fmt.Errorf("admin %s: %w", email, ErrNotFound)
}

// Count returns the number of stored admins
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	admins, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(admins), nil
}

func (r *AdminRepository) writeDefault(ctx context.Context) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := models.Now()
	admin := models.Admin{
		ID:        defaultAdminID,
		Name:      defaultAdminName,
		Email:     defaultAdminEmail,
		Password:  string(hash),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.store.Set(ctx, adminsKey, []models.Admin{admin}); err != nil {
		return nil, fmt.Errorf("failed to save admin: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepository) load(ctx context.Context) ([]models.Admin, error) {
	admins, err := store.GetList[models.Admin](ctx, r.store, adminsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load admins: %w", err)
	}
	return admins, nil
}

// DefaultAdminEmail is the login of the self-provisioned admin
func DefaultAdminEmail() string {
	return defaultAdminEmail
}
