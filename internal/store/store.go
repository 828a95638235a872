package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"studio-backend/internal/metrics"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotFound is returned by a Backend when the key does not exist.
	ErrNotFound = errors.New("key not found")
	// ErrUnavailable is returned when no external backend is configured.
	ErrUnavailable = errors.New("kv backend not configured")
)

// Backend is a flat key -> JSON document store.
type Backend interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Store reads and writes whole collections. It prefers the external backend
// and serves a call from the in-process fallback whenever that backend is
// missing or fails. Data written to the fallback is never copied back.
type Store struct {
	primary  Backend
	fallback *Memory
}

// New creates a store. primary may be nil, in which case every call uses the
// fallback.
func New(primary Backend, fallback *Memory) *Store {
	if fallback == nil {
		fallback = NewMemory()
	}
	return &Store{
		primary:  primary,
		fallback: fallback,
	}
}

// Status describes which backend is active.
type Status struct {
	Backend    string `json:"backend"`
	Configured bool   `json:"configured"`
	Healthy    bool   `json:"healthy"`
	Error      string `json:"error,omitempty"`
}

// Configured reports whether an external backend is set.
func (s *Store) Configured() bool {
	return s.primary != nil
}

// Primary returns the external backend or ErrUnavailable.
func (s *Store) Primary() (Backend, error) {
	if s.primary == nil {
		return nil, ErrUnavailable
	}
	return s.primary, nil
}

// Status pings the external backend.
func (s *Store) Status(ctx context.Context) Status {
	if s.primary == nil {
		return Status{Backend: s.fallback.Name()}
	}
	st := Status{Backend: s.primary.Name(), Configured: true}
	if err := s.primary.Ping(ctx); err != nil {
		st.Error = err.Error()
		return st
	}
	st.Healthy = true
	return st
}

// Get decodes the document at key into dst. found is false when the key does
// not exist in whichever backend served the call.
func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	if s.primary != nil {
		data, err := s.primary.Get(ctx, key)
		switch {
		case err == nil:
			decodeErr := json.Unmarshal(data, dst)
			if decodeErr == nil {
				return true, nil
			}
			s.degrade("get", key, fmt.Errorf("decode: %w", decodeErr))
		case errors.Is(err, ErrNotFound):
			return false, nil
		default:
			s.degrade("get", key, err)
		}
	}

	data, err := s.fallback.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Set replaces the document at key.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if s.primary != nil {
		err := s.primary.Set(ctx, key, data)
		if err == nil {
			return nil
		}
		s.degrade("set", key, err)
	}

	return s.fallback.Set(ctx, key, data)
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.primary != nil {
		err := s.primary.Delete(ctx, key)
		if err == nil {
			return nil
		}
		s.degrade("delete", key, err)
	}
	return s.fallback.Delete(ctx, key)
}

func (s *Store) degrade(op, key string, err error) {
	metrics.RecordKVFallback(op)
	log.Warn().
		Err(err).
		Str("backend", s.primary.Name()).
		Str("op", op).
		Str("key", key).
		Msg("KV operation failed, using in-memory fallback")
}

// GetList loads a JSON array stored at key. A missing key yields an empty,
// non-nil slice.
func GetList[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	var items []T
	found, err := s.Get(ctx, key, &items)
	if err != nil {
		return nil, err
	}
	if !found || items == nil {
		return []T{}, nil
	}
	return items, nil
}
