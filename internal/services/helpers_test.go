package services

import (
	"context"
	"sync"

	"studio-backend/internal/mailer"
	"studio-backend/internal/store"
)

func newTestStore() *store.Store {
	return store.New(nil, nil)
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

type event struct {
	kind string
	data interface{}
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []event
}

func (p *recordingPublisher) Publish(kind string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event{kind: kind, data: data})
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.kind)
	}
	return out
}

// countingSender counts sends per recipient
type countingSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *countingSender) Send(_ context.Context, to string, _ mailer.Email) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	if s.err != nil {
		return "", s.err
	}
	return "id@example.com", nil
}

func (s *countingSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

var testSite = mailer.Site{
	StudioName: "Sharp Images Photography",
	AdminEmail: "studio@example.com",
	WebsiteURL: "https://studio.example.com",
}
