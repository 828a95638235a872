package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// REST talks to a Redis-compatible KV service over its HTTP command API
// (Upstash / Vercel KV). Documents are stored as JSON strings.
type REST struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewREST creates a REST backend for the given endpoint and bearer token.
func NewREST(baseURL, token string) *REST {
	return &REST{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *REST) Name() string { return "rest" }

func (r *REST) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.command(ctx, "GET", key)
	if err != nil {
		return nil, err
	}
	if result.Type == gjson.Null {
		return nil, ErrNotFound
	}
	return []byte(result.String()), nil
}

func (r *REST) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.command(ctx, "SET", key, string(value))
	return err
}

func (r *REST) Delete(ctx context.Context, key string) error {
	_, err := r.command(ctx, "DEL", key)
	return err
}

func (r *REST) Ping(ctx context.Context) error {
	result, err := r.command(ctx, "PING")
	if err != nil {
		return err
	}
	if !strings.EqualFold(result.String(), "PONG") {
		return fmt.Errorf("unexpected ping reply %q", result.String())
	}
	return nil
}

func (r *REST) command(ctx context.Context, args ...string) (gjson.Result, error) {
	body, err := json.Marshal(args)
	if err != nil {
		return gjson.Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to build kv request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("kv %s: %w", args[0], err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("kv %s: read response: %w", args[0], err)
	}

	if msg := gjson.GetBytes(raw, "error"); msg.Exists() {
		return gjson.Result{}, fmt.Errorf("kv %s: %s", args[0], msg.String())
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return gjson.Result{}, fmt.Errorf("kv %s: status %d", args[0], resp.StatusCode)
	}

	result := gjson.GetBytes(raw, "result")
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("kv %s: malformed response", args[0])
	}
	return result, nil
}
