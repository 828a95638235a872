package mailer

import (
	"context"
	"sync"
	"time"

	"studio-backend/internal/metrics"
	"studio-backend/internal/models"

	"github.com/rs/zerolog/log"
)

const dispatchTimeout = 30 * time.Second

// Result is the outcome of one email attempt.
type Result struct {
	Type      string `json:"type"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Notifier renders and sends the studio's transactional emails. Failures are
// reported in the returned Result and never as an error.
type Notifier struct {
	sender Sender
	site   Site
	wg     sync.WaitGroup
}

// NewNotifier creates a notifier
func NewNotifier(sender Sender, site Site) *Notifier {
	return &Notifier{sender: sender, site: site}
}

// NotifyBookingInquiry emails the admin and, when the client left an
// address, the client.
func (n *Notifier) NotifyBookingInquiry(ctx context.Context, inquiry models.BookingInquiry) []Result {
	results := make([]Result, 0, 2)

	adminMail, err := renderInquiryAdmin(n.site, inquiry)
	results = append(results, n.deliver(ctx, "admin", n.site.AdminEmail, adminMail, err))

	if inquiry.Email != "" {
		clientMail, err := renderInquiryClient(n.site, inquiry)
		results = append(results, n.deliver(ctx, "client", inquiry.Email, clientMail, err))
	}
	return results
}

// NotifyAdminLogin sends the login alert to the admin address.
func (n *Notifier) NotifyAdminLogin(ctx context.Context, details LoginDetails) Result {
	email, err := renderAdminLogin(n.site, details)
	return n.deliver(ctx, "admin_login", n.site.AdminEmail, email, err)
}

// Dispatch runs fn on a detached goroutine. fn gets a context that survives
// the caller's cancellation but expires after a fixed timeout.
func (n *Notifier) Dispatch(ctx context.Context, fn func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(detached, dispatchTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// Wait blocks until every dispatched send has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) deliver(ctx context.Context, kind, to string, email Email, renderErr error) Result {
	res := Result{Type: kind}
	if renderErr != nil {
		res.Error = renderErr.Error()
	} else if to == "" {
		res.Error = "no recipient address"
	} else if id, err := n.sender.Send(ctx, to, email); err != nil {
		res.Error = err.Error()
	} else {
		res.Success = true
		res.MessageID = id
	}

	metrics.RecordNotification(kind, res.Success)
	if res.Success {
		log.Info().Str("type", kind).Str("message_id", res.MessageID).Msg("Email sent")
	} else {
		log.Error().Str("type", kind).Str("error", res.Error).Msg("Failed to send email")
	}
	return res
}
