package handlers

import (
	"net/http"

	"studio-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// GetActivePhotos handles GET /api/photos/active
func (h *PhotoHandler) GetActivePhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photoService.ListActive(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to fetch active gallery images")
		return
	}
	respondJSON(w, http.StatusOK, photos)
}

// GetGallery handles GET /api/gallery
func (h *PhotoHandler) GetGallery(w http.ResponseWriter, r *http.Request) {
	gallery, err := h.photoService.Gallery(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to fetch gallery images")
		return
	}
	respondJSON(w, http.StatusOK, gallery)
}

// GetPhotos handles GET /api/photos
func (h *PhotoHandler) GetPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photoService.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to fetch photos")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"photos":  photos,
	})
}

// CreatePhoto handles POST /api/photos
func (h *PhotoHandler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePhotoRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	photo, err := h.photoService.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "", "Failed to add photo")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"photo":   photo,
	})
}

// UpdatePhoto handles PUT /api/photos
func (h *PhotoHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	var req services.UpdatePhotoRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	photo, err := h.photoService.Update(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Photo not found", "Failed to update photo")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"photo":   photo,
	})
}

// DeletePhoto handles DELETE /api/photos
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	var req services.DeletePhotoRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	removed, err := h.photoService.Delete(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Photo not found", "Failed to delete photo")
		return
	}

	log.Info().Str("photo_id", removed.ID).Bool("delete_asset", req.DeleteAsset).Msg("Photo deleted")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Photo deleted successfully",
	})
}
