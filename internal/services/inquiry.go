package services

import (
	"context"
	"strings"

	"studio-backend/internal/mailer"
	"studio-backend/internal/models"
	"studio-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// InquiryNotifier sends booking inquiry emails in the background
type InquiryNotifier interface {
	NotifyBookingInquiry(ctx context.Context, inquiry models.BookingInquiry) []mailer.Result
	Dispatch(ctx context.Context, fn func(ctx context.Context))
}

// InquiryService handles contact form submissions
type InquiryService struct {
	inquiryRepo *repository.InquiryRepository
	notifier    InquiryNotifier
	events      Publisher
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(inquiryRepo *repository.InquiryRepository, notifier InquiryNotifier, events Publisher) *InquiryService {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		notifier:    notifier,
		events:      publisherOrNoop(events),
	}
}

// CreateInquiryRequest represents the contact form payload
type CreateInquiryRequest struct {
	FullName      string             `json:"fullName"`
	Email         string             `json:"email"`
	PhoneNumber   string             `json:"phoneNumber"`
	Location      string             `json:"location"`
	ServiceType   models.ServiceType `json:"serviceType"`
	PreferredDate string             `json:"preferredDate"`
	Message       string             `json:"message"`
}

// UpdateInquiryRequest represents an admin edit of an inquiry
type UpdateInquiryRequest struct {
	FullName      *string               `json:"fullName"`
	Email         *string               `json:"email"`
	PhoneNumber   *string               `json:"phoneNumber"`
	Location      *string               `json:"location"`
	ServiceType   *models.ServiceType   `json:"serviceType"`
	PreferredDate *string               `json:"preferredDate"`
	Message       *string               `json:"message"`
	Status        *models.InquiryStatus `json:"status"`
}

// Create stores the inquiry and queues the notification emails. The email
// outcome never affects the returned result.
func (s *InquiryService) Create(ctx context.Context, req CreateInquiryRequest) (*models.BookingInquiry, error) {
	in := repository.InquiryInput{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.TrimSpace(req.Email),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		Location:      strings.TrimSpace(req.Location),
		ServiceType:   req.ServiceType,
		PreferredDate: strings.TrimSpace(req.PreferredDate),
		Message:       strings.TrimSpace(req.Message),
	}

	switch {
	case in.FullName == "":
		return nil, invalid("fullName", "is required")
	case in.PhoneNumber == "":
		return nil, invalid("phoneNumber", "is required")
	case in.ServiceType == "":
		return nil, invalid("serviceType", "is required")
	case !in.ServiceType.Valid():
		return nil, invalid("serviceType", "unknown service type")
	case in.PreferredDate == "":
		return nil, invalid("preferredDate", "is required")
	}

	inquiry, err := s.inquiryRepo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("inquiry_id", inquiry.ID).
		Str("service_type", string(inquiry.ServiceType)).
		Msg("Booking inquiry received")

	if s.notifier != nil {
		snapshot := *inquiry
		s.notifier.Dispatch(ctx, func(ctx context.Context) {
			results := s.notifier.NotifyBookingInquiry(ctx, snapshot)
			log.Debug().Str("inquiry_id", snapshot.ID).Interface("results", results).Msg("Inquiry notifications finished")
		})
	}
	s.events.Publish(EventInquiryCreated, inquiry)
	return inquiry, nil
}

// List returns all inquiries, newest first
func (s *InquiryService) List(ctx context.Context) ([]models.BookingInquiry, error) {
	return s.inquiryRepo.List(ctx)
}

// Get returns one inquiry
func (s *InquiryService) Get(ctx context.Context, id string) (*models.BookingInquiry, error) {
	return s.inquiryRepo.Get(ctx, id)
}

// Update applies an admin edit
func (s *InquiryService) Update(ctx context.Context, id string, req UpdateInquiryRequest) (*models.BookingInquiry, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, invalid("status", "unknown status")
	}
	if req.ServiceType != nil && !req.ServiceType.Valid() {
		return nil, invalid("serviceType", "unknown service type")
	}

	return s.inquiryRepo.Update(ctx, id, repository.InquiryPatch{
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Location:      req.Location,
		ServiceType:   req.ServiceType,
		PreferredDate: req.PreferredDate,
		Message:       req.Message,
		Status:        req.Status,
	})
}

// Delete removes an inquiry
func (s *InquiryService) Delete(ctx context.Context, id string) error {
	return s.inquiryRepo.Delete(ctx, id)
}
