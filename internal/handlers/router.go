package handlers

import (
	"net/http"

	"studio-backend/internal/metrics"
	"studio-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups every HTTP handler served by the router
type Handlers struct {
	Photo     *PhotoHandler
	Inquiry   *InquiryHandler
	Auth      *AuthHandler
	Upload    *UploadHandler
	Content   *ContentHandler
	Admin     *AdminHandler
	WebSocket *WebSocketHandler
}

// NewRouter builds the chi router with all routes mounted
func NewRouter(h Handlers, tokens middleware.TokenValidator) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Instrument)
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/photos/active", h.Photo.GetActivePhotos)
		r.Get("/gallery", h.Photo.GetGallery)
		r.Post("/booking-inquiries", h.Inquiry.CreateInquiry)
		r.Post("/login", h.Auth.Login)
		r.Get("/content/testimonials", h.Content.GetTestimonials)
		r.Get("/photo-packages", h.Content.GetPackages)
		r.Get("/photo-packages/active", h.Content.GetActivePackages)
		r.Get("/debug/kv-connection", h.Admin.KVConnection)
		r.Get("/debug/photos", h.Admin.PhotoReport)

		// Command Center routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(tokens))

			r.Get("/photos", h.Photo.GetPhotos)
			r.Post("/photos", h.Photo.CreatePhoto)
			r.Put("/photos", h.Photo.UpdatePhoto)
			r.Delete("/photos", h.Photo.DeletePhoto)

			r.Get("/booking-inquiries", h.Inquiry.ListInquiries)
			r.Get("/booking-inquiries/{id}", h.Inquiry.GetInquiry)
			r.Put("/booking-inquiries/{id}", h.Inquiry.UpdateInquiry)
			r.Delete("/booking-inquiries/{id}", h.Inquiry.DeleteInquiry)

			r.Post("/upload", h.Upload.Upload)
			r.Delete("/upload", h.Upload.DeleteUpload)

			r.Post("/photo-packages", h.Content.CreatePackage)
			r.Post("/admin/backup", h.Admin.CreateBackup)
			r.Post("/debug/create-admin", h.Admin.CreateAdmin)
		})
	})

	r.Get("/ws", h.WebSocket.HandleWebSocket)
	r.Get("/healthz", h.Admin.Health)
	r.Handle("/metrics", metrics.Handler())

	return r
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
