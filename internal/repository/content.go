package repository

import (
	"context"
	"fmt"
	"sort"

	"studio-backend/internal/models"
	"studio-backend/internal/store"

	"github.com/rs/zerolog/log"
)

const (
	testimonialsKey = "testimonials"
	packagesKey     = "photo_packages"
)

// TestimonialRepository serves the home page reviews
type TestimonialRepository struct {
	store *store.Store
}

// NewTestimonialRepository creates a new testimonial repository
func NewTestimonialRepository(s *store.Store) *TestimonialRepository {
	return &TestimonialRepository{store: s}
}

// ListActive returns active testimonials, seeding the samples on first use
func (r *TestimonialRepository) ListActive(ctx context.Context) ([]models.Testimonial, error) {
	items, err := store.GetList[models.Testimonial](ctx, r.store, testimonialsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load testimonials: %w", err)
	}

	if len(items) == 0 {
		items = sampleTestimonials()
		if err := r.store.Set(ctx, testimonialsKey, items); err != nil {
			log.Warn().Err(err).Msg("Could not save sample testimonials")
		}
	}

	active := make([]models.Testimonial, 0, len(items))
	for _, t := range items {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active, nil
}

// PackageInput holds the fields accepted for a new package
type PackageInput struct {
	Title           string
	Description     string
	Price           float64
	ServiceCategory models.ServiceType
	ImageURL        string
	Features        string
	IsActive        *bool
}

// PackageRepository handles the priced service bundles
type PackageRepository struct {
	store *store.Store
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(s *store.Store) *PackageRepository {
	return &PackageRepository{store: s}
}

// List returns all packages, newest first
func (r *PackageRepository) List(ctx context.Context) ([]models.PhotoPackage, error) {
	packages, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(packages, func(i, j int) bool {
		ti, _ := models.ParseTime(packages[i].CreatedAt)
		tj, _ := models.ParseTime(packages[j].CreatedAt)
		return ti.After(tj)
	})
	return packages, nil
}

// ListActive returns active packages, newest first
func (r *PackageRepository) ListActive(ctx context.Context) ([]models.PhotoPackage, error) {
	packages, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]models.PhotoPackage, 0, len(packages))
	for _, p := range packages {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

// Create adds a package. isActive defaults to true.
func (r *PackageRepository) Create(ctx context.Context, in PackageInput) (*models.PhotoPackage, error) {
	packages, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	now := models.Now()
	pkg := models.PhotoPackage{
		ID:              models.NewID("package"),
		Title:           in.Title,
		Description:     in.Description,
		Price:           in.Price,
		ServiceCategory: in.ServiceCategory,
		ImageURL:        in.ImageURL,
		Features:        in.Features,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.IsActive != nil {
		pkg.IsActive = *in.IsActive
	}

	packages = append(packages, pkg)
	if err := r.store.Set(ctx, packagesKey, packages); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	return &pkg, nil
}

func (r *PackageRepository) load(ctx context.Context) ([]models.PhotoPackage, error) {
	var packages []models.PhotoPackage
	found, err := r.store.Get(ctx, packagesKey, &packages)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if !found {
		packages = samplePackages()
		if err := r.store.Set(ctx, packagesKey, packages); err != nil {
			log.Warn().Err(err).Msg("Could not save sample packages")
		}
	}
	if packages == nil {
		packages = []models.PhotoPackage{}
	}
	return packages, nil
}

func sampleTestimonials() []models.Testimonial {
	now := models.Now()
	image := "/placeholder.svg?height=80&width=80"
	return []models.Testimonial{
		{
			ID:        1,
			Name:      "Priya & Rahul",
			Role:      "Wedding Couple",
			Image:     image,
			Rating:    5,
			Text:      "Sharp Images Photography made our wedding day absolutely magical! Every moment was captured with such artistry and emotion. The team was professional, creative, and made us feel so comfortable. Our photos are beyond our dreams!",
			Event:     "Wedding Photography",
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        2,
			Name:      "Anita Sharma",
			Role:      "Birthday Celebration",
			Image:     image,
			Rating:    5,
			Text:      "The birthday party photography was exceptional! They captured all the joy, laughter, and precious moments with my family. The candid shots are absolutely beautiful, and the quality is outstanding. Highly recommended!",
			Event:     "Birthday Photography",
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        3,
			Name:      "Vikram Singh",
			Role:      "Model & Actor",
			Image:     image,
			Rating:    5,
			Text:      "Professional portfolio shoot that exceeded all expectations! The photographer understood my vision perfectly and created stunning images that have helped advance my career. The attention to detail and creative direction was remarkable.",
			Event:     "Portfolio Shoot",
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        4,
			Name:      "Tech Solutions Pvt Ltd",
			Role:      "Corporate Client",
			Image:     image,
			Rating:    5,
			Text:      "Outstanding corporate event photography! They captured our product launch perfectly, from the keynote presentations to networking moments. Professional, punctual, and delivered high-quality images that we're proud to use in our marketing.",
			Event:     "Corporate Event",
			IsActive:  true,
			CreatedAt: now,
		},
	}
}

func samplePackages() []models.PhotoPackage {
	now := models.Now()
	image := "/placeholder.svg?height=400&width=600"
	return []models.PhotoPackage{
		{
			ID:              "package_1",
			Title:           "Premium Wedding Package",
			Description:     "Complete wedding photography coverage with pre-wedding, ceremony, and reception shots.",
			Price:           50000,
			ServiceCategory: models.ServiceWedding,
			ImageURL:        image,
			Features:        "Pre-wedding consultation, Engagement shoot, Full ceremony coverage, Reception photography, Bridal portraits, Family group photos, Online gallery delivery, High-resolution images",
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              "package_2",
			Title:           "Birthday Celebration Package",
			Description:     "Capture all the joy and excitement of your special birthday celebration.",
			Price:           15000,
			ServiceCategory: models.ServiceBirthday,
			ImageURL:        image,
			Features:        "Party setup photography, Candid moment capture, Cake cutting ceremony, Group photos with guests, Individual portraits, Decoration photography, Same-day preview, Digital photo delivery",
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              "package_3",
			Title:           "Professional Portfolio Package",
			Description:     "Professional headshots and portfolio photography for your career advancement.",
			Price:           8000,
			ServiceCategory: models.ServicePortfolio,
			ImageURL:        image,
			Features:        "Professional consultation, Multiple outfit changes, Studio & outdoor options, Professional lighting, Retouching included, Multiple poses & angles, Quick turnaround, Print-ready files",
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}
