package services

import (
	"context"
	"testing"

	"studio-backend/internal/mailer"
	"studio-backend/internal/models"
	"studio-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInquiryService(sender mailer.Sender) (*InquiryService, *mailer.Notifier, *recordingPublisher) {
	notifier := mailer.NewNotifier(sender, testSite)
	events := &recordingPublisher{}
	svc := NewInquiryService(repository.NewInquiryRepository(newTestStore()), notifier, events)
	return svc, notifier, events
}

func validInquiry() CreateInquiryRequest {
	return CreateInquiryRequest{
		FullName:      "Asha Patil",
		PhoneNumber:   "9876543210",
		ServiceType:   models.ServiceWedding,
		PreferredDate: "2025-02-14",
	}
}

func TestInquiryCreateWithoutEmailNotifiesAdminOnce(t *testing.T) {
	sender := &countingSender{}
	svc, notifier, events := newInquiryService(sender)

	inquiry, err := svc.Create(context.Background(), validInquiry())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, inquiry.Status)

	notifier.Wait()
	assert.Equal(t, []string{testSite.AdminEmail}, sender.recipients())
	assert.Equal(t, []string{EventInquiryCreated}, events.kinds())
}

func TestInquiryCreateWithEmailNotifiesBoth(t *testing.T) {
	sender := &countingSender{}
	svc, notifier, _ := newInquiryService(sender)

	req := validInquiry()
	req.Email = "asha@example.com"
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	notifier.Wait()
	assert.ElementsMatch(t, []string{testSite.AdminEmail, "asha@example.com"}, sender.recipients())
}

func TestInquiryCreateSurvivesMailFailure(t *testing.T) {
	sender := &countingSender{err: mailer.ErrNotConfigured}
	svc, notifier, _ := newInquiryService(sender)

	ctx, cancel := context.WithCancel(context.Background())
	inquiry, err := svc.Create(ctx, validInquiry())
	cancel()
	require.NoError(t, err)
	require.NotNil(t, inquiry)

	notifier.Wait()
	assert.Len(t, sender.recipients(), 1)
}

func TestInquiryCreateValidation(t *testing.T) {
	svc, notifier, _ := newInquiryService(&countingSender{})
	defer notifier.Wait()

	tests := []struct {
		name  string
		edit  func(*CreateInquiryRequest)
		field string
	}{
		{"missing name", func(r *CreateInquiryRequest) { r.FullName = " " }, "fullName"},
		{"missing phone", func(r *CreateInquiryRequest) { r.PhoneNumber = "" }, "phoneNumber"},
		{"missing service", func(r *CreateInquiryRequest) { r.ServiceType = "" }, "serviceType"},
		{"unknown service", func(r *CreateInquiryRequest) { r.ServiceType = "SKYDIVING" }, "serviceType"},
		{"missing date", func(r *CreateInquiryRequest) { r.PreferredDate = "" }, "preferredDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validInquiry()
			tt.edit(&req)

			_, err := svc.Create(context.Background(), req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestInquiryUpdate(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := newInquiryService(&countingSender{})
	defer notifier.Wait()

	inquiry, err := svc.Create(ctx, validInquiry())
	require.NoError(t, err)

	bad := models.InquiryStatus("ARCHIVED")
	_, err = svc.Update(ctx, inquiry.ID, UpdateInquiryRequest{Status: &bad})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	seen := models.StatusSeen
	updated, err := svc.Update(ctx, inquiry.ID, UpdateInquiryRequest{Status: &seen})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSeen, updated.Status)

	_, err = svc.Update(ctx, "inquiry_missing", UpdateInquiryRequest{Status: &seen})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, inquiry.ID))
	_, err = svc.Get(ctx, inquiry.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
