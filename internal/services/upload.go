package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"studio-backend/internal/cloudinary"
	"studio-backend/internal/metrics"

	"github.com/rs/zerolog/log"
)

const (
	// MaxUploadSize caps a single image upload
	MaxUploadSize = 10 << 20

	// DefaultUploadFolder is the media host folder used when none is given
	DefaultUploadFolder = "sharp-images"
)

// allowedImageTypes is the upload allow-list. image/jpg is accepted as an
// alias some browsers send.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// MediaHost is the remote image store
type MediaHost interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (*cloudinary.UploadResult, error)
	Destroy(ctx context.Context, publicID string) (bool, error)
}

// UploadService validates images and hands them to the media host
type UploadService struct {
	host   MediaHost
	folder string
}

// NewUploadService creates a new upload service. A nil host makes every
// valid upload fail with ErrUploadNotConfigured.
func NewUploadService(host MediaHost, folder string) *UploadService {
	if folder == "" {
		folder = DefaultUploadFolder
	}
	return &UploadService{host: host, folder: folder}
}

// UploadInput is one image to upload
type UploadInput struct {
	Data        []byte
	ContentType string
	Filename    string
	Folder      string
}

// UploadResponse is returned to the console after a successful upload
type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Format   string `json:"format,omitempty"`
}

// Upload checks type and size, then uploads. Nothing is sent to the media
// host unless validation passes.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*UploadResponse, error) {
	contentType, err := validateImage(in)
	if err != nil {
		metrics.RecordUpload("rejected")
		return nil, err
	}

	if s.host == nil {
		metrics.RecordUpload("failed")
		return nil, ErrUploadNotConfigured
	}

	folder := in.Folder
	if folder == "" {
		folder = s.folder
	}
	filename := in.Filename
	if filename == "" {
		filename = "upload." + extensions[contentType]
	}

	result, err := s.host.Upload(ctx, in.Data, filename, folder)
	if err != nil {
		metrics.RecordUpload("failed")
		log.Error().Err(err).Str("folder", folder).Int("bytes", len(in.Data)).Msg("Media upload failed")
		return nil, err
	}

	metrics.RecordUpload("ok")
	log.Info().Str("public_id", result.PublicID).Int("bytes", len(in.Data)).Msg("Image uploaded")
	return &UploadResponse{
		Success:  true,
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Width:    result.Width,
		Height:   result.Height,
		Format:   result.Format,
	}, nil
}

// Delete removes an asset at the media host. Failures are logged and
// reported as false.
func (s *UploadService) Delete(ctx context.Context, publicID string) bool {
	if s.host == nil || publicID == "" {
		return false
	}
	ok, err := s.host.Destroy(ctx, publicID)
	if err != nil {
		log.Error().Err(err).Str("public_id", publicID).Msg("Media delete failed")
		return false
	}
	if !ok {
		log.Warn().Str("public_id", publicID).Msg("Media host did not confirm delete")
	}
	return ok
}

// ParseDataURI decodes a "data:<mime>;base64,<payload>" string
func ParseDataURI(uri string) (UploadInput, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return UploadInput{}, invalid("image", "must be a base64 data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return UploadInput{}, invalid("image", "malformed data URI")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return UploadInput{}, invalid("image", "data URI must be base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return UploadInput{}, invalid("image", fmt.Sprintf("invalid base64 payload: %v", err))
	}
	return UploadInput{Data: data, ContentType: mediaType}, nil
}

func validateImage(in UploadInput) (string, error) {
	if len(in.Data) == 0 {
		return "", invalid("", "No file provided")
	}
	if len(in.Data) > MaxUploadSize {
		return "", invalid("", "File too large. Maximum size is 10MB")
	}

	declared := strings.ToLower(strings.TrimSpace(strings.Split(in.ContentType, ";")[0]))
	if declared != "" && !allowedImageTypes[declared] {
		return "", invalid("", "Invalid file type. Only JPEG, PNG, and WebP are allowed")
	}

	detected, ok := allowedImageMIME(in.Data)
	if !ok {
		return "", invalid("", "Invalid file type. Only JPEG, PNG, and WebP are allowed")
	}
	return detected, nil
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}
