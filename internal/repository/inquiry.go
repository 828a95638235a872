package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"studio-backend/internal/models"
	"studio-backend/internal/store"
)

const inquiriesKey = "booking_inquiries"

// InquiryInput holds a validated contact form submission
type InquiryInput struct {
	FullName      string
	Email         string
	PhoneNumber   string
	Location      string
	ServiceType   models.ServiceType
	PreferredDate string
	Message       string
}

// InquiryPatch holds the fields an admin may change
type InquiryPatch struct {
	FullName      *string
	Email         *string
	PhoneNumber   *string
	Location      *string
	ServiceType   *models.ServiceType
	PreferredDate *string
	Message       *string
	Status        *models.InquiryStatus
}

// InquiryRepository handles storage of booking inquiries
type InquiryRepository struct {
	store *store.Store
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(s *store.Store) *InquiryRepository {
	return &InquiryRepository{store: s}
}

// List returns all inquiries, newest first
func (r *InquiryRepository) List(ctx context.Context) ([]models.BookingInquiry, error) {
	inquiries, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(inquiries, func(i, j int) bool {
		return inquiryTime(inquiries[i]).After(inquiryTime(inquiries[j]))
	})
	return inquiries, nil
}

// Get returns a single inquiry
func (r *InquiryRepository) Get(ctx context.Context, id string) (*models.BookingInquiry, error) {
	inquiries, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfInquiry(inquiries, id)
	if idx < 0 {
		return nil, fmt.Errorf("inquiry %s: %w", id, ErrNotFound)
	}
	return &inquiries[idx], nil
}

// Create stores a new inquiry with status PENDING
func (r *InquiryRepository) Create(ctx context.Context, in InquiryInput) (*models.BookingInquiry, error) {
	inquiries, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	now := models.Now()
	inquiry := models.BookingInquiry{
		ID:            models.NewID("inquiry"),
		FullName:      in.FullName,
		Email:         in.Email,
		PhoneNumber:   in.PhoneNumber,
		Location:      in.Location,
		ServiceType:   in.ServiceType,
		PreferredDate: in.PreferredDate,
		Message:       in.Message,
		Status:        models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	inquiries = append(inquiries, inquiry)
	if err := r.store.Set(ctx, inquiriesKey, inquiries); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return &inquiry, nil
}

// Update merges patch over the inquiry and refreshes updatedAt
func (r *InquiryRepository) Update(ctx context.Context, id string, patch InquiryPatch) (*models.BookingInquiry, error) {
	inquiries, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfInquiry(inquiries, id)
	if idx < 0 {
		return nil, fmt.Errorf("inquiry %s: %w", id, ErrNotFound)
	}

	q := &inquiries[idx]
	setString(&q.FullName, patch.FullName)
	setString(&q.Email, patch.Email)
	setString(&q.PhoneNumber, patch.PhoneNumber)
	setString(&q.Location, patch.Location)
	setString(&q.PreferredDate, patch.PreferredDate)
	setString(&q.Message, patch.Message)
	if patch.ServiceType != nil {
		q.ServiceType = *patch.ServiceType
	}
	if patch.Status != nil {
		q.Status = *patch.Status
	}
	q.UpdatedAt = models.Now()

	updated := *q
	if err := r.store.Set(ctx, inquiriesKey, inquiries); err != nil {
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}
	return &updated, nil
}

// Delete removes an inquiry
func (r *InquiryRepository) Delete(ctx context.Context, id string) error {
	inquiries, err := r.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOfInquiry(inquiries, id)
	if idx < 0 {
		return fmt.Errorf("inquiry %s: %w", id, ErrNotFound)
	}

	remaining := make([]models.BookingInquiry, 0, len(inquiries)-1)
	remaining = append(remaining, inquiries[:idx]...)
	remaining = append(remaining, inquiries[idx+1:]...)
	if err := r.store.Set(ctx, inquiriesKey, remaining); err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	return nil
}

func (r *InquiryRepository) load(ctx context.Context) ([]models.BookingInquiry, error) {
	inquiries, err := store.GetList[models.BookingInquiry](ctx, r.store, inquiriesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load inquiries: %w", err)
	}
	return inquiries, nil
}

func indexOfInquiry(inquiries []models.BookingInquiry, id string) int {
	for i := range inquiries {
		if inquiries[i].ID == id {
			return i
		}
	}
	return -1
}

func inquiryTime(q models.BookingInquiry) time.Time {
	if t, ok := models.ParseTime(q.CreatedAt); ok {
		return t
	}
	return time.Unix(0, 0)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
