package services

import (
	"context"
	"fmt"
	"strings"

	"studio-backend/internal/models"
	"studio-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// AssetRemover deletes a photo's backing asset at the media host
type AssetRemover interface {
	Delete(ctx context.Context, publicID string) bool
}

// PhotoService handles gallery business logic
type PhotoService struct {
	photoRepo *repository.PhotoRepository
	assets    AssetRemover
	events    Publisher
}

// NewPhotoService creates a new photo service. assets and events may be nil.
func NewPhotoService(photoRepo *repository.PhotoRepository, assets AssetRemover, events Publisher) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		assets:    assets,
		events:    publisherOrNoop(events),
	}
}

// CreatePhotoRequest represents the admin "add photo" payload
type CreatePhotoRequest struct {
	Title              string `json:"title"`
	Category           string `json:"category"`
	ImageURL           string `json:"imageUrl"`
	CloudinaryPublicID string `json:"cloudinaryPublicId"`
	IsActive           *bool  `json:"isActive"`
}

// UpdatePhotoRequest represents the admin "edit photo" payload
type UpdatePhotoRequest struct {
	ID                 string  `json:"id"`
	Title              *string `json:"title"`
	Category           *string `json:"category"`
	ImageURL           *string `json:"imageUrl"`
	CloudinaryPublicID *string `json:"cloudinaryPublicId"`
	IsActive           *bool   `json:"isActive"`
}

// DeletePhotoRequest represents the admin "delete photo" payload
type DeletePhotoRequest struct {
	ID          string `json:"id"`
	DeleteAsset bool   `json:"deleteAsset"`
}

// ListAll returns every photo, newest first
func (s *PhotoService) ListAll(ctx context.Context) ([]models.Photo, error) {
	return s.photoRepo.ListAll(ctx)
}

// ListActive returns the public gallery, newest first
func (s *PhotoService) ListActive(ctx context.Context) ([]models.Photo, error) {
	return s.photoRepo.ListActive(ctx)
}

// Create validates and stores a new photo
func (s *PhotoService) Create(ctx context.Context, req CreatePhotoRequest) (*models.Photo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.Category == "" || req.ImageURL == "" {
		return nil, invalid("", "Missing required fields: title, category, and imageUrl are required")
	}

	photo, err := s.photoRepo.Create(ctx, repository.PhotoInput{
		Title:              title,
		Category:           req.Category,
		ImageURL:           req.ImageURL,
		CloudinaryPublicID: req.CloudinaryPublicID,
		IsActive:           req.IsActive,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("photo_id", photo.ID).Str("category", photo.Category).Msg("Photo created")
	s.events.Publish(EventPhotoCreated, photo)
	return photo, nil
}

// Update applies an admin edit
func (s *PhotoService) Update(ctx context.Context, req UpdatePhotoRequest) (*models.Photo, error) {
	if req.ID == "" {
		return nil, invalid("id", "Photo ID is required")
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return nil, invalid("title", "must not be empty")
		}
		req.Title = &trimmed
	}

	photo, err := s.photoRepo.Update(ctx, req.ID, repository.PhotoPatch{
		Title:              req.Title,
		Category:           req.Category,
		ImageURL:           req.ImageURL,
		CloudinaryPublicID: req.CloudinaryPublicID,
		IsActive:           req.IsActive,
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(EventPhotoUpdated, photo)
	return photo, nil
}

// Delete removes the record. The media host asset is only removed when
// requested, and a failure there is logged and otherwise ignored.
func (s *PhotoService) Delete(ctx context.Context, req DeletePhotoRequest) (*models.Photo, error) {
	if req.ID == "" {
		return nil, invalid("id", "Photo ID is required")
	}

	removed, err := s.photoRepo.Delete(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.DeleteAsset && removed.CloudinaryPublicID != "" && s.assets != nil {
		if !s.assets.Delete(ctx, removed.CloudinaryPublicID) {
			log.Error().
				Str("photo_id", removed.ID).
				Str("public_id", removed.CloudinaryPublicID).
				Msg("Photo deleted but media asset was not removed")
		}
	}

	s.events.Publish(EventPhotoDeleted, map[string]string{"id": removed.ID})
	return removed, nil
}

// Gallery is the paged envelope used by the public gallery endpoint
type Gallery struct {
	Content       []models.Photo `json:"content"`
	TotalPages    int            `json:"totalPages"`
	TotalElements int            `json:"totalElements"`
	Last          bool           `json:"last"`
}

// Gallery returns all photos in a single page
func (s *PhotoService) Gallery(ctx context.Context) (*Gallery, error) {
	photos, err := s.photoRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery: %w", err)
	}
	return &Gallery{
		Content:       photos,
		TotalPages:    1,
		TotalElements: len(photos),
		Last:          true,
	}, nil
}
