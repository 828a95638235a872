package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := New("demo", "key123", "secret456")
	c.baseURL = url
	return c
}

func TestSignSortsAndExcludes(t *testing.T) {
	c := New("demo", "key123", "secret456")

	got := c.sign(map[string]string{
		"timestamp": "1700000000",
		"folder":    "sharp-images",
		"api_key":   "key123",
		"file":      "data",
		"empty":     "",
	})

	want := fmt.Sprintf("%x", sha1.Sum([]byte("folder=sharp-images&timestamp=1700000000secret456")))
	assert.Equal(t, want, got)
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "key123", r.FormValue("api_key"))
		assert.Equal(t, "sharp-images", r.FormValue("folder"))
		assert.Equal(t, DefaultTransformation, r.FormValue("transformation"))
		assert.NotEmpty(t, r.FormValue("signature"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "photo.jpg", header.Filename)
		assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"public_id":  "sharp-images/abc",
			"secure_url": "https://res.cloudinary.com/demo/image/upload/sharp-images/abc.jpg",
			"width":      1200,
		})
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Upload(context.Background(), []byte{0xFF, 0xD8, 0xFF}, "photo.jpg", "sharp-images")
	require.NoError(t, err)
	assert.Equal(t, "sharp-images/abc", result.PublicID)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/sharp-images/abc.jpg", result.SecureURL)
}

func TestUploadHostError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Upload(context.Background(), []byte{1}, "x.png", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "Invalid Signature")
}

func TestDestroy(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   bool
	}{
		{name: "ok", result: "ok", want: true},
		{name: "not found", result: "not found", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/demo/image/destroy", r.URL.Path)
				require.NoError(t, r.ParseMultipartForm(1<<20))
				assert.Equal(t, "sharp-images/abc", r.FormValue("public_id"))
				_ = json.NewEncoder(w).Encode(map[string]string{"result": tt.result})
			}))
			defer server.Close()

			ok, err := newTestClient(server.URL).Destroy(context.Background(), "sharp-images/abc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
