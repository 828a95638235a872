package services

import (
	"context"
	"strings"

	"studio-backend/internal/models"
	"studio-backend/internal/repository"
)

// ContentService serves the marketing content: testimonials and packages
type ContentService struct {
	testimonialRepo *repository.TestimonialRepository
	packageRepo     *repository.PackageRepository
}

// NewContentService creates a new content service
func NewContentService(testimonialRepo *repository.TestimonialRepository, packageRepo *repository.PackageRepository) *ContentService {
	return &ContentService{testimonialRepo: testimonialRepo, packageRepo: packageRepo}
}

// CreatePackageRequest represents the admin "add package" payload
type CreatePackageRequest struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Price           *float64           `json:"price"`
	ServiceCategory models.ServiceType `json:"serviceCategory"`
	ImageURL        string             `json:"imageUrl"`
	Features        string             `json:"features"`
	IsActive        *bool              `json:"isActive"`
}

// Testimonials returns the active testimonials
func (s *ContentService) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.testimonialRepo.ListActive(ctx)
}

// Packages returns all packages, newest first
func (s *ContentService) Packages(ctx context.Context) ([]models.PhotoPackage, error) {
	return s.packageRepo.List(ctx)
}

// ActivePackages returns the packages shown on the services page
func (s *ContentService) ActivePackages(ctx context.Context) ([]models.PhotoPackage, error) {
	return s.packageRepo.ListActive(ctx)
}

// CreatePackage validates and stores a package
func (s *ContentService) CreatePackage(ctx context.Context, req CreatePackageRequest) (*models.PhotoPackage, error) {
	title := strings.TrimSpace(req.Title)
	switch {
	case title == "":
		return nil, invalid("title", "is required")
	case req.Price == nil || *req.Price < 0:
		return nil, invalid("price", "must be a non-negative number")
	case !req.ServiceCategory.Valid():
		return nil, invalid("serviceCategory", "unknown service type")
	}

	return s.packageRepo.Create(ctx, repository.PackageInput{
		Title:           title,
		Description:     req.Description,
		Price:           *req.Price,
		ServiceCategory: req.ServiceCategory,
		ImageURL:        req.ImageURL,
		Features:        req.Features,
		IsActive:        req.IsActive,
	})
}
