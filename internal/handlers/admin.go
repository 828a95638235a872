package handlers

import (
	"net/http"

	"studio-backend/internal/services"
	"studio-backend/internal/store"
)

// AdminHandler serves backups, diagnostics and health checks
type AdminHandler struct {
	backupService *services.BackupService
	diagnostics   *services.Diagnostics
	store         *store.Store
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(backupService *services.BackupService, diagnostics *services.Diagnostics, s *store.Store) *AdminHandler {
	return &AdminHandler{
		backupService: backupService,
		diagnostics:   diagnostics,
		store:         s,
	}
}

// CreateBackup handles POST /api/admin/backup
func (h *AdminHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	result, err := h.backupService.Create(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to create backup")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Backup created successfully",
		"data":     result.Snapshot,
		"location": result.Location,
	})
}

// KVConnection handles GET /api/debug/kv-connection
func (h *AdminHandler) KVConnection(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.diagnostics.ProbeKV(r.Context()))
}

// PhotoReport handles GET /api/debug/photos
func (h *AdminHandler) PhotoReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.diagnostics.PhotoReport(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to inspect photos")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// CreateAdmin handles POST /api/debug/create-admin
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	admin, err := h.diagnostics.ResetAdmin(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to create admin")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Admin created successfully",
		"admin":   admin,
	})
}

// Health handles GET /healthz. A degraded store still answers 200 because
// requests are served from the fallback.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.store.Status(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"store":  status,
	})
}
