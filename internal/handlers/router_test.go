package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"studio-backend/internal/mailer"
	"studio-backend/internal/repository"
	"studio-backend/internal/services"
	"studio-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSender struct {
	mu    sync.Mutex
	count int
}

func (s *nopSender) Send(context.Context, string, mailer.Email) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	return "id@example.com", nil
}

type testServer struct {
	handler  http.Handler
	notifier *mailer.Notifier
	sender   *nopSender
}

func newTestServer(t *testing.T, jwtSecret string) *testServer {
	t.Helper()

	st := store.New(nil, nil)
	photoRepo := repository.NewPhotoRepository(st)
	adminRepo := repository.NewAdminRepository(st)
	inquiryRepo := repository.NewInquiryRepository(st)
	settingsRepo := repository.NewSettingsRepository(st)

	sender := &nopSender{}
	notifier := mailer.NewNotifier(sender, mailer.Site{AdminEmail: "studio@example.com"})
	t.Cleanup(notifier.Wait)

	hub := services.NewWSHub()
	t.Cleanup(hub.Close)

	uploadService := services.NewUploadService(nil, "")
	authService := services.NewAuthService(adminRepo, notifier, jwtSecret, time.Hour)

	h := NewRouter(Handlers{
		Photo:   NewPhotoHandler(services.NewPhotoService(photoRepo, uploadService, hub)),
		Inquiry: NewInquiryHandler(services.NewInquiryService(inquiryRepo, notifier, hub)),
		Auth:    NewAuthHandler(authService),
		Upload:  NewUploadHandler(uploadService),
		Content: NewContentHandler(services.NewContentService(
			repository.NewTestimonialRepository(st), repository.NewPackageRepository(st),
		)),
		Admin: NewAdminHandler(
			services.NewBackupService(photoRepo, inquiryRepo, settingsRepo, nil, "", ""),
			services.NewDiagnostics(st, photoRepo, adminRepo),
			st,
		),
		WebSocket: NewWebSocketHandler(hub, authService),
	}, authService)

	return &testServer{handler: h, notifier: notifier, sender: sender}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestPhotoRoutes(t *testing.T) {
	srv := newTestServer(t, "")

	rec := srv.do(t, http.MethodPost, "/api/photos", map[string]interface{}{"title": "A"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])

	rec = srv.do(t, http.MethodPost, "/api/photos", map[string]interface{}{
		"title": "A", "category": "wedding", "imageUrl": "http://x/y.jpg",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	photo := decodeBody(t, rec)["photo"].(map[string]interface{})
	id := photo["id"].(string)
	assert.Regexp(t, `^photo_\d+_[0-9a-z]+$`, id)
	assert.Equal(t, true, photo["isActive"])

	rec = srv.do(t, http.MethodGet, "/api/photos/active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0]["id"])

	rec = srv.do(t, http.MethodPut, "/api/photos", map[string]interface{}{"id": id, "isActive": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/photos/active", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/gallery", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["totalElements"])

	rec = srv.do(t, http.MethodDelete, "/api/photos", map[string]interface{}{"id": "photo_missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Photo not found", decodeBody(t, rec)["error"])

	rec = srv.do(t, http.MethodDelete, "/api/photos", map[string]interface{}{"id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Photo deleted successfully", decodeBody(t, rec)["message"])
}

func TestUnknownFieldsRejected(t *testing.T) {
	srv := newTestServer(t, "")

	rec := srv.do(t, http.MethodPost, "/api/photos", `{"title":"A","category":"wedding","imageUrl":"http://x","owner":"me"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/photos", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingInquiryRoutes(t *testing.T) {
	srv := newTestServer(t, "")

	rec := srv.do(t, http.MethodPost, "/api/booking-inquiries", map[string]interface{}{
		"fullName": "Asha", "phoneNumber": "9876543210", "serviceType": "WEDDING", "preferredDate": "2025-02-14",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Booking inquiry submitted successfully!", body["message"])
	inquiry := body["inquiry"].(map[string]interface{})
	assert.Equal(t, "PENDING", inquiry["status"])

	srv.notifier.Wait()
	assert.Equal(t, 1, srv.sender.count)

	rec = srv.do(t, http.MethodPost, "/api/booking-inquiries", map[string]interface{}{"fullName": "Asha"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/booking-inquiries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["total"])

	id := inquiry["id"].(string)
	rec = srv.do(t, http.MethodPut, "/api/booking-inquiries/"+id, map[string]interface{}{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CONFIRMED", decodeBody(t, rec)["status"])

	rec = srv.do(t, http.MethodGet, "/api/booking-inquiries/inquiry_missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/booking-inquiries/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRoute(t *testing.T) {
	srv := newTestServer(t, "")

	for _, creds := range []map[string]string{
		{"email": "nobody@example.com", "password": repository.DefaultAdminPassword},
		{"email": repository.DefaultAdminEmail(), "password": "wrong"},
	} {
		rec := srv.do(t, http.MethodPost, "/api/login", creds)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Invalid email or password"}`, rec.Body.String())
	}

	rec := srv.do(t, http.MethodPost, "/api/login", map[string]string{
		"email": repository.DefaultAdminEmail(), "password": repository.DefaultAdminPassword,
	}, "X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotContains(t, body, "token")
	admin := body["admin"].(map[string]interface{})
	assert.Equal(t, "admin_1", admin["id"])
	assert.NotContains(t, admin, "password")
}

func TestAdminRoutesRequireTokenWhenEnabled(t *testing.T) {
	srv := newTestServer(t, "test-secret")

	rec := srv.do(t, http.MethodGet, "/api/booking-inquiries", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/photos/active", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/login", map[string]string{
		"email": repository.DefaultAdminEmail(), "password": repository.DefaultAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["token"].(string)

	rec = srv.do(t, http.MethodGet, "/api/booking-inquiries", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadRoutes(t *testing.T) {
	srv := newTestServer(t, "")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="brochure.pdf"`},
		"Content-Type":        {"application/pdf"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid file type")

	rec = srv.do(t, http.MethodPost, "/api/upload", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No image provided")

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	rec = srv.do(t, http.MethodPost, "/api/upload", map[string]string{
		"image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/upload", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/upload", map[string]string{"public_id": "sharp-images/abc"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["deleted"])
}

func TestContentRoutes(t *testing.T) {
	srv := newTestServer(t, "")

	rec := srv.do(t, http.MethodGet, "/api/content/testimonials", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["testimonials"], 4)

	rec = srv.do(t, http.MethodPost, "/api/photo-packages", map[string]interface{}{
		"title": "Event", "price": 9000, "serviceCategory": "EVENT",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/photo-packages/active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var packages []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &packages))
	assert.Len(t, packages, 4)
}

func TestAdminAndDiagnosticRoutes(t *testing.T) {
	srv := newTestServer(t, "")

	rec := srv.do(t, http.MethodPost, "/api/admin/backup", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Backup created successfully", body["message"])
	assert.NotContains(t, body["data"], "admins")

	rec = srv.do(t, http.MethodGet, "/api/debug/kv-connection", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])

	rec = srv.do(t, http.MethodGet, "/api/debug/photos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Not Available", decodeBody(t, rec)["kvStatus"])

	rec = srv.do(t, http.MethodPost, "/api/debug/create-admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Admin created successfully", decodeBody(t, rec)["message"])

	rec = srv.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])

	rec = srv.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "studio_http_requests_total"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, "")

	rec := srv.do(t, http.MethodOptions, "/api/photos", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
