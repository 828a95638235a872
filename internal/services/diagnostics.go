package services

import (
	"context"
	"encoding/json"
	"fmt"

	"studio-backend/internal/models"
	"studio-backend/internal/repository"
	"studio-backend/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Diagnostics backs the operational debug endpoints
type Diagnostics struct {
	store     *store.Store
	photoRepo *repository.PhotoRepository
	adminRepo *repository.AdminRepository
}

// NewDiagnostics creates the diagnostics service
func NewDiagnostics(s *store.Store, photoRepo *repository.PhotoRepository, adminRepo *repository.AdminRepository) *Diagnostics {
	return &Diagnostics{store: s, photoRepo: photoRepo, adminRepo: adminRepo}
}

// KVProbe is the result of a write/read/delete round trip against the KV
type KVProbe struct {
	Success            bool            `json:"success"`
	Backend            string          `json:"backend"`
	Message            string          `json:"message,omitempty"`
	Error              string          `json:"error,omitempty"`
	CurrentPhotosCount int             `json:"currentPhotosCount"`
	TestData           json.RawMessage `json:"testData,omitempty"`
}

// ProbeKV writes, reads and deletes a throwaway key directly on the
// external backend, bypassing the fallback.
func (d *Diagnostics) ProbeKV(ctx context.Context) KVProbe {
	backend, err := d.store.Primary()
	if err != nil {
		return KVProbe{
			Backend: "memory",
			Error:   "KV environment variables not configured",
			Message: "Set KV_REST_API_URL and KV_REST_API_TOKEN (or choose the redis/postgres driver)",
		}
	}

	probe := KVProbe{Backend: backend.Name()}
	key := "test_" + uuid.New().String()
	payload, _ := json.Marshal(map[string]any{"test": true, "timestamp": models.Now()})

	if err := backend.Set(ctx, key, payload); err != nil {
		probe.Error = fmt.Sprintf("write failed: %v", err)
		return probe
	}
	read, err := backend.Get(ctx, key)
	if err != nil {
		probe.Error = fmt.Sprintf("read failed: %v", err)
		return probe
	}
	if err := backend.Delete(ctx, key); err != nil {
		probe.Error = fmt.Sprintf("delete failed: %v", err)
		return probe
	}

	if photos, err := d.photoRepo.ListAll(ctx); err == nil {
		probe.CurrentPhotosCount = len(photos)
	}

	probe.Success = true
	probe.Message = "KV connection is working properly"
	probe.TestData = read
	log.Info().Str("backend", probe.Backend).Msg("KV probe succeeded")
	return probe
}

// PhotoSummary is one row of the photo report
type PhotoSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	IsActive    bool   `json:"isActive"`
	HasImageURL bool   `json:"hasImageUrl"`
	CreatedAt   string `json:"createdAt"`
}

// PhotoReport summarizes the photos collection
type PhotoReport struct {
	KVStatus     string         `json:"kvStatus"`
	TotalPhotos  int            `json:"totalPhotos"`
	ActivePhotos int            `json:"activePhotos"`
	Categories   map[string]int `json:"categories"`
	Photos       []PhotoSummary `json:"photos"`
}

// PhotoReport counts photos by state and category
func (d *Diagnostics) PhotoReport(ctx context.Context) (*PhotoReport, error) {
	status := d.store.Status(ctx)
	kvStatus := "Not Available"
	switch {
	case status.Healthy:
		kvStatus = "Available"
	case status.Configured:
		kvStatus = "Error: " + status.Error
	}

	photos, err := d.photoRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &PhotoReport{
		KVStatus:    kvStatus,
		TotalPhotos: len(photos),
		Categories:  make(map[string]int),
		Photos:      make([]PhotoSummary, 0, len(photos)),
	}
	for _, p := range photos {
		if p.IsActive {
			report.ActivePhotos++
		}
		if p.Category != "" {
			report.Categories[p.Category]++
		}
		report.Photos = append(report.Photos, PhotoSummary{
			ID:          p.ID,
			Title:       p.Title,
			Category:    p.Category,
			IsActive:    p.IsActive,
			HasImageURL: p.ImageURL != "",
			CreatedAt:   p.CreatedAt,
		})
	}
	return report, nil
}

// ResetAdmin replaces the admin collection with the default admin
func (d *Diagnostics) ResetAdmin(ctx context.Context) (*models.AdminSummary, error) {
	admin, err := d.adminRepo.ForceCreateDefault(ctx)
	if err != nil {
		return nil, err
	}
	summary := admin.Summary()
	return &summary, nil
}
