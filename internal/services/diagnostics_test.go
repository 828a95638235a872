package services

import (
	"context"
	"errors"
	"testing"

	"studio-backend/internal/repository"
	"studio-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenBackend struct{}

func (brokenBackend) Name() string { return "rest" }
func (brokenBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (brokenBackend) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}
func (brokenBackend) Delete(context.Context, string) error {
	return errors.New("connection refused")
}
func (brokenBackend) Ping(context.Context) error { return errors.New("connection refused") }

func newDiagnostics(s *store.Store) *Diagnostics {
	return NewDiagnostics(s, repository.NewPhotoRepository(s), repository.NewAdminRepository(s))
}

func TestProbeKVNotConfigured(t *testing.T) {
	probe := newDiagnostics(newTestStore()).ProbeKV(context.Background())
	assert.False(t, probe.Success)
	assert.Equal(t, "KV environment variables not configured", probe.Error)
}

func TestProbeKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	primary := store.NewMemory()
	s := store.New(primary, nil)

	_, err := repository.NewPhotoRepository(s).Create(ctx, repository.PhotoInput{Title: "A", Category: "event", ImageURL: "http://x/a.jpg"})
	require.NoError(t, err)

	probe := newDiagnostics(s).ProbeKV(ctx)
	require.True(t, probe.Success, probe.Error)
	assert.Equal(t, "memory", probe.Backend)
	assert.Equal(t, 1, probe.CurrentPhotosCount)
	assert.Contains(t, string(probe.TestData), `"test":true`)
	assert.Equal(t, 1, primary.Keys(), "probe key must be removed")
}

func TestProbeKVFailure(t *testing.T) {
	probe := newDiagnostics(store.New(brokenBackend{}, nil)).ProbeKV(context.Background())
	assert.False(t, probe.Success)
	assert.Contains(t, probe.Error, "write failed")
}

func TestPhotoReport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, repository.NewPhotoRepository(s).Seed(ctx, repository.SamplePhotos()))
	_, err := repository.NewPhotoRepository(s).Create(ctx, repository.PhotoInput{
		Title: "Hidden", Category: "wedding", ImageURL: "http://x/h.jpg", IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	report, err := newDiagnostics(s).PhotoReport(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Not Available", report.KVStatus)
	assert.Equal(t, 9, report.TotalPhotos)
	assert.Equal(t, 8, report.ActivePhotos)
	assert.Equal(t, 2, report.Categories["wedding"])
	assert.Len(t, report.Photos, 9)
}

func TestPhotoReportDegradedStore(t *testing.T) {
	report, err := newDiagnostics(store.New(brokenBackend{}, nil)).PhotoReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Error: connection refused", report.KVStatus)
}

func TestResetAdmin(t *testing.T) {
	admin, err := newDiagnostics(newTestStore()).ResetAdmin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin_1", admin.ID)
	assert.Equal(t, repository.DefaultAdminEmail(), admin.Email)
}
