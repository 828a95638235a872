package handlers

import (
	"net/http"

	"studio-backend/internal/services"
)

// ContentHandler serves testimonials and photo packages
type ContentHandler struct {
	contentService *services.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GetTestimonials handles GET /api/content/testimonials
func (h *ContentHandler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.contentService.Testimonials(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to fetch testimonials")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"testimonials": testimonials,
	})
}

// GetPackages handles GET /api/photo-packages
func (h *ContentHandler) GetPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.contentService.Packages(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to fetch photo packages")
		return
	}
	respondJSON(w, http.StatusOK, packages)
}

// GetActivePackages handles GET /api/photo-packages/active
func (h *ContentHandler) GetActivePackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.contentService.ActivePackages(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to fetch active photo packages")
		return
	}
	respondJSON(w, http.StatusOK, packages)
}

// CreatePackage handles POST /api/photo-packages
func (h *ContentHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePackageRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	pkg, err := h.contentService.CreatePackage(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "", "Failed to create photo package")
		return
	}
	respondJSON(w, http.StatusCreated, pkg)
}
