package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// DefaultTransformation normalizes quality and format and caps the size at
// 1200x1200 without upscaling.
const DefaultTransformation = "q_auto,f_auto,c_limit,w_1200,h_1200"

// ErrUploadFailed wraps every failed upload, carrying the host's message.
var ErrUploadFailed = errors.New("upload failed")

// Client uploads and destroys images through the Cloudinary REST API.
type Client struct {
	CloudName string
	APIKey    string
	APISecret string
	HTTP      *http.Client

	baseURL string
}

// New creates a Cloudinary client.
func New(cloudName, apiKey, apiSecret string) *Client {
	return &Client{
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		HTTP:      &http.Client{Timeout: 60 * time.Second},
		baseURL:   defaultBaseURL,
	}
}

// UploadResult holds the response from Cloudinary after a successful upload.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int    `json:"bytes"`
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends raw image bytes to folder with the default transformation.
func (c *Client) Upload(ctx context.Context, data []byte, filename, folder string) (*UploadResult, error) {
	params := map[string]string{
		"timestamp":      strconv.FormatInt(time.Now().Unix(), 10),
		"transformation": DefaultTransformation,
	}
	if folder != "" {
		params["folder"] = folder
	}

	body, err := c.post(ctx, "image/upload", params, func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, bytes.NewReader(data))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUploadFailed, err)
	}
	if result.SecureURL == "" {
		result.SecureURL = result.URL
	}
	return &result, nil
}

// Destroy removes an asset. It reports true only when the host answers "ok".
func (c *Client) Destroy(ctx context.Context, publicID string) (bool, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"public_id": publicID,
	}

	body, err := c.post(ctx, "image/destroy", params, nil)
	if err != nil {
		return false, fmt.Errorf("cloudinary: destroy %s: %w", publicID, err)
	}

	var result struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("cloudinary: decode destroy response: %w", err)
	}
	return result.Result == "ok", nil
}

func (c *Client) post(ctx context.Context, action string, params map[string]string, attach func(*multipart.Writer) error) ([]byte, error) {
	params["signature"] = c.sign(params)
	params["api_key"] = c.APIKey

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range params {
		_ = w.WriteField(k, v)
	}
	if attach != nil {
		if err := attach(w); err != nil {
			return nil, fmt.Errorf("write file: %w", err)
		}
	}
	w.Close()

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.CloudName, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		var e errorBody
		if json.Unmarshal(body, &e) == nil && e.Error.Message != "" {
			return nil, fmt.Errorf("%s (%d)", e.Error.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// sign computes the Cloudinary API signature from the given params.
// api_key, file and resource_type are not signed.
func (c *Client) sign(params map[string]string) string {
	excludeKeys := map[string]bool{"api_key": true, "file": true, "resource_type": true}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		if !excludeKeys[k] && v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)

	payload := strings.Join(pairs, "&") + c.APISecret
	h := sha1.New()
	h.Write([]byte(payload))
	return fmt.Sprintf("%x", h.Sum(nil))
}
