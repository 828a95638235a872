package services

import (
	"context"
	"testing"

	"studio-backend/internal/models"
	"studio-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService() *ContentService {
	s := newTestStore()
	return NewContentService(repository.NewTestimonialRepository(s), repository.NewPackageRepository(s))
}

func TestContentTestimonials(t *testing.T) {
	testimonials, err := newContentService().Testimonials(context.Background())
	require.NoError(t, err)
	assert.Len(t, testimonials, 4)
}

func TestCreatePackage(t *testing.T) {
	ctx := context.Background()
	svc := newContentService()
	price := 12000.0

	tests := []struct {
		name string
		req  CreatePackageRequest
	}{
		{"missing title", CreatePackageRequest{Price: &price, ServiceCategory: models.ServiceEvent}},
		{"missing price", CreatePackageRequest{Title: "Event", ServiceCategory: models.ServiceEvent}},
		{"unknown category", CreatePackageRequest{Title: "Event", Price: &price, ServiceCategory: "SKYDIVING"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePackage(ctx, tt.req)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	pkg, err := svc.CreatePackage(ctx, CreatePackageRequest{
		Title: "Event Coverage", Price: &price, ServiceCategory: models.ServiceEvent, IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, pkg.IsActive)

	all, err := svc.Packages(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	active, err := svc.ActivePackages(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}
