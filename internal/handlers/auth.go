package handlers

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"studio-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles Command Center login
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password, services.LoginMeta{
		IP:        clientIP(r),
		UserAgent: orUnknown(r.UserAgent()),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Invalid email or password",
			})
			return
		}
		log.Error().Err(err).Msg("Login failed")
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	response := map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"admin":   result.Admin,
	}
	if result.Token != "" {
		response["token"] = result.Token
	}
	respondJSON(w, http.StatusOK, response)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return orUnknown(r.RemoteAddr)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
