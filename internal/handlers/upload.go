package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"studio-backend/internal/cloudinary"
	"studio-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// base64 inflates by 4/3; leave room for the JSON envelope
const maxDataURIBody = services.MaxUploadSize/3*4 + 1<<20

// UploadHandler handles image uploads to the media host
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

type dataURIUpload struct {
	Image  string `json:"image"`
	Folder string `json:"folder"`
}

type deleteUploadRequest struct {
	PublicID string `json:"public_id"`
}

// Upload handles POST /api/upload. It accepts a multipart "file" field or a
// JSON body carrying a base64 data URI.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var (
		in  services.UploadInput
		err error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		in, err = readMultipartUpload(w, r)
	} else {
		in, err = readDataURIUpload(w, r)
	}
	if err != nil {
		respondServiceError(w, err, "", "Upload failed")
		return
	}

	result, err := h.uploadService.Upload(r.Context(), in)
	if err != nil {
		if errors.Is(err, cloudinary.ErrUploadFailed) {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondServiceError(w, err, "", "Upload failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// DeleteUpload handles DELETE /api/upload
func (h *UploadHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	var req deleteUploadRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PublicID == "" {
		respondError(w, "No public_id provided", http.StatusBadRequest)
		return
	}

	deleted := h.uploadService.Delete(r.Context(), req.PublicID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	})
}

func readMultipartUpload(w http.ResponseWriter, r *http.Request) (services.UploadInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return services.UploadInput{}, &services.ValidationError{Message: "File too large. Maximum size is 10MB"}
		}
		return services.UploadInput{}, &services.ValidationError{Message: "No file provided"}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return services.UploadInput{}, &services.ValidationError{Message: "Could not read uploaded file"}
	}

	return services.UploadInput{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
		Folder:      r.FormValue("folder"),
	}, nil
}

func readDataURIUpload(w http.ResponseWriter, r *http.Request) (services.UploadInput, error) {
	var req dataURIUpload
	if err := decodeJSON(w, r, &req, maxDataURIBody); err != nil {
		return services.UploadInput{}, &services.ValidationError{Message: err.Error()}
	}
	if req.Image == "" {
		return services.UploadInput{}, &services.ValidationError{Message: "No image provided"}
	}

	in, err := services.ParseDataURI(req.Image)
	if err != nil {
		return services.UploadInput{}, err
	}
	in.Folder = req.Folder
	return in, nil
}
