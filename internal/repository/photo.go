package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"studio-backend/internal/models"
	"studio-backend/internal/store"
)

const photosKey = "photos"

// ErrNotFound is returned when no record matches the requested id
var ErrNotFound = errors.New("record not found")

// PhotoInput holds the fields accepted when creating a photo
type PhotoInput struct {
	Title              string
	Category           string
	ImageURL           string
	CloudinaryPublicID string
	IsActive           *bool
}

// PhotoPatch holds the fields an admin may change. Nil fields are left as is.
type PhotoPatch struct {
	Title              *string
	Category           *string
	ImageURL           *string
	CloudinaryPublicID *string
	IsActive           *bool
}

// PhotoRepository handles storage of the photos collection
type PhotoRepository struct {
	store *store.Store
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(s *store.Store) *PhotoRepository {
	return &PhotoRepository{store: s}
}

// ListAll returns every photo, newest first
func (r *PhotoRepository) ListAll(ctx context.Context) ([]models.Photo, error) {
	photos, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(photos)
	return photos, nil
}

// ListActive returns published photos, newest first
func (r *PhotoRepository) ListActive(ctx context.Context) ([]models.Photo, error) {
	photos, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]models.Photo, 0, len(photos))
	for _, p := range photos {
		if p.IsActive {
			active = append(active, p)
		}
	}
	SortNewestFirst(active)
	return active, nil
}

// Create appends a new photo. isActive defaults to true.
func (r *PhotoRepository) Create(ctx context.Context, in PhotoInput) (*models.Photo, error) {
	photos, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	now := models.Now()
	photo := models.Photo{
		ID:                 models.NewID("photo"),
		Title:              in.Title,
		Category:           in.Category,
		ImageURL:           in.ImageURL,
		CloudinaryPublicID: in.CloudinaryPublicID,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.IsActive != nil {
		photo.IsActive = *in.IsActive
	}

	photos = append(photos, photo)
	if err := r.store.Set(ctx, photosKey, photos); err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}
	return &photo, nil
}

// Update merges patch over the photo with the given id and refreshes updatedAt
func (r *PhotoRepository) Update(ctx context.Context, id string, patch PhotoPatch) (*models.Photo, error) {
	photos, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfPhoto(photos, id)
	if idx < 0 {
		return nil, fmt.Errorf("photo %s: %w", id, ErrNotFound)
	}

	p := &photos[idx]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.CloudinaryPublicID != nil {
		p.CloudinaryPublicID = *patch.CloudinaryPublicID
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	p.UpdatedAt = models.Now()

	updated := *p
	if err := r.store.Set(ctx, photosKey, photos); err != nil {
		return nil, fmt.Errorf("failed to update photo: %w", err)
	}
	return &updated, nil
}

// Delete removes the photo and returns the removed record
func (r *PhotoRepository) Delete(ctx context.Context, id string) (*models.Photo, error) {
	photos, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfPhoto(photos, id)
	if idx < 0 {
		return nil, fmt.Errorf("photo %s: %w", id, ErrNotFound)
	}

	removed := photos[idx]
	remaining := make([]models.Photo, 0, len(photos)-1)
	remaining = append(remaining, photos[:idx]...)
	remaining = append(remaining, photos[idx+1:]...)

	if err := r.store.Set(ctx, photosKey, remaining); err != nil {
		return nil, fmt.Errorf("failed to delete photo: %w", err)
	}
	return &removed, nil
}

// Seed writes the given photos when the collection is empty
func (r *PhotoRepository) Seed(ctx context.Context, photos []models.Photo) error {
	existing, err := r.load(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return r.store.Set(ctx, photosKey, photos)
}

func (r *PhotoRepository) load(ctx context.Context) ([]models.Photo, error) {
	photos, err := store.GetList[models.Photo](ctx, r.store, photosKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load photos: %w", err)
	}
	return photos, nil
}

func indexOfPhoto(photos []models.Photo, id string) int {
	for i := range photos {
		if photos[i].ID == id {
			return i
		}
	}
	return -1
}

// SortNewestFirst orders photos by createdAt, then uploadedAt, descending.
// Records with neither timestamp sort as the epoch.
func SortNewestFirst(photos []models.Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		return photoTime(photos[i]).After(photoTime(photos[j]))
	})
}

func photoTime(p models.Photo) time.Time {
	if t, ok := models.ParseTime(p.CreatedAt); ok {
		return t
	}
	if t, ok := models.ParseTime(p.UploadedAt); ok {
		return t
	}
	return time.Unix(0, 0)
}

// SamplePhotos are the placeholder portfolio entries served by a fresh
// in-memory store.
func SamplePhotos() []models.Photo {
	samples := []struct{ title, category, label string }{
		{"Pre-Wedding Romance", "pre-wedding", "Pre-Wedding+Photo"},
		{"Wedding Ceremony", "wedding", "Wedding+Photo"},
		{"Post-Wedding Bliss", "post-wedding", "Post-Wedding+Photo"},
		{"Maternity Glow", "maternity", "Maternity+Photo"},
		{"Baby Shower Joy", "baby-shower", "Baby+Shower+Photo"},
		{"Newborn Baby", "baby-shoots", "Baby+Photo"},
		{"Special Event", "event", "Event+Photo"},
		{"Corporate Meeting", "corporate", "Corporate+Photo"},
	}

	now := models.Now()
	photos := make([]models.Photo, 0, len(samples))
	for i, s := range samples {
		photos = append(photos, models.Photo{
			ID:        fmt.Sprintf("photo_%d", i+1),
			Title:     s.title,
			Category:  s.category,
			ImageURL:  "/placeholder.svg?height=300&width=300&text=" + s.label,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return photos
}
