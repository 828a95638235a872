package handlers

import (
	"net/http"

	"studio-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// InquiryHandler handles booking inquiry HTTP requests
type InquiryHandler struct {
	inquiryService *services.InquiryService
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiryService *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// CreateInquiry handles POST /api/booking-inquiries
func (h *InquiryHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req services.CreateInquiryRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	inquiry, err := h.inquiryService.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "", "Failed to create booking inquiry")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Booking inquiry submitted successfully!",
		"inquiry": inquiry,
	})
}

// ListInquiries handles GET /api/booking-inquiries
func (h *InquiryHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.inquiryService.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "", "Failed to fetch booking inquiries")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"inquiries": inquiries,
		"total":     len(inquiries),
	})
}

// GetInquiry handles GET /api/booking-inquiries/{id}
func (h *InquiryHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	inquiry, err := h.inquiryService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err, "Booking inquiry not found", "Failed to fetch booking inquiry")
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// UpdateInquiry handles PUT /api/booking-inquiries/{id}
func (h *InquiryHandler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateInquiryRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	inquiry, err := h.inquiryService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, err, "Booking inquiry not found", "Failed to update booking inquiry")
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// DeleteInquiry handles DELETE /api/booking-inquiries/{id}
func (h *InquiryHandler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.inquiryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err, "Booking inquiry not found", "Failed to delete booking inquiry")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Booking inquiry deleted successfully",
	})
}
