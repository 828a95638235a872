package repository

import (
	"context"
	"testing"

	"studio-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminEnsureDefault(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminRepository(newTestStore())

	created, err := repo.EnsureDefault(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureDefault(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	admin, err := repo.FindActiveByEmail(ctx, DefaultAdminEmail())
	require.NoError(t, err)
	assert.Equal(t, "admin_1", admin.ID)
	assert.NotEqual(t, DefaultAdminPassword, admin.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(DefaultAdminPassword)))
}

func TestAdminFindActiveByEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	repo := NewAdminRepository(s)

	require.NoError(t, s.Set(ctx, adminsKey, []models.Admin{
		{ID: "a1", Email: "owner@example.com", IsActive: false},
		{ID: "a2", Email: "Owner@example.com", IsActive: true},
	}))

	_, err := repo.FindActiveByEmail(ctx, "owner@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	admin, err := repo.FindActiveByEmail(ctx, "Owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, "a2", admin.ID)
}

func TestAdminForceCreateDefaultReplacesCollection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	repo := NewAdminRepository(s)

	require.NoError(t, s.Set(ctx, adminsKey, []models.Admin{
		{ID: "a1", Email: "a@example.com", IsActive: true},
		{ID: "a2", Email: "b@example.com", IsActive: true},
	}))

	admin, err := repo.ForceCreateDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultAdminEmail(), admin.Email)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInquiryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewInquiryRepository(newTestStore())

	created, err := repo.Create(ctx, InquiryInput{
		FullName:      "Asha Patil",
		PhoneNumber:   "9876543210",
		ServiceType:   models.ServiceMaternity,
		PreferredDate: "2025-02-14",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^inquiry_\d+_[0-9a-z]{7}$`, created.ID)
	assert.Equal(t, models.StatusPending, created.Status)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Patil", got.FullName)

	status := models.StatusConfirmed
	updated, err := repo.Update(ctx, created.ID, InquiryPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Equal(t, "9876543210", updated.PhoneNumber)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
}

func TestInquiryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	repo := NewInquiryRepository(s)

	require.NoError(t, s.Set(ctx, inquiriesKey, []models.BookingInquiry{
		{ID: "first", CreatedAt: "2024-01-01T00:00:00.000Z"},
		{ID: "third", CreatedAt: "2024-03-01T00:00:00.000Z"},
		{ID: "second", CreatedAt: "2024-02-01T00:00:00.000Z"},
	}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].ID)
	assert.Equal(t, "second", list[1].ID)
	assert.Equal(t, "first", list[2].ID)
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(newTestStore())

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, settings.Initialized)
	assert.Equal(t, "1.0.0", settings.Version)

	stamp := "2025-01-01T00:00:00.000Z"
	_, err = repo.Update(ctx, SettingsPatch{LastBackup: &stamp})
	require.NoError(t, err)

	settings, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, stamp, settings.LastBackup)
	assert.Equal(t, "1.0.0", settings.Version)
}

func TestTestimonialsSeeded(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	repo := NewTestimonialRepository(s)

	items, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4)
	for _, item := range items {
		assert.Equal(t, 5, item.Rating)
	}

	var stored []models.Testimonial
	found, err := s.Get(ctx, testimonialsKey, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, stored, 4)
}

func TestPackages(t *testing.T) {
	ctx := context.Background()
	repo := NewPackageRepository(newTestStore())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pkg, err := repo.Create(ctx, PackageInput{
		Title:           "Maternity Session",
		Price:           12000,
		ServiceCategory: models.ServiceMaternity,
		IsActive:        boolPtr(false),
	})
	require.NoError(t, err)
	assert.Regexp(t, `^package_\d+_[0-9a-z]{7}$`, pkg.ID)

	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}
