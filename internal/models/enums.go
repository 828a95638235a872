package models

// ServiceType is the kind of shoot a client asks about
type ServiceType string

const (
	ServicePreWedding  ServiceType = "PRE_WEDDING"
	ServiceWedding     ServiceType = "WEDDING"
	ServicePostWedding ServiceType = "POST_WEDDING"
	ServiceMaternity   ServiceType = "MATERNITY"
	ServiceBabyShower  ServiceType = "BABY_SHOWER"
	ServiceBabyShoots  ServiceType = "BABY_SHOOTS"
	ServiceEvent       ServiceType = "EVENT"
	ServiceCorporate   ServiceType = "CORPORATE"
	ServiceBirthday    ServiceType = "BIRTHDAY"
	ServicePortfolio   ServiceType = "PORTFOLIO"
)

var serviceTypes = map[ServiceType]bool{
	ServicePreWedding:  true,
	ServiceWedding:     true,
	ServicePostWedding: true,
	ServiceMaternity:   true,
	ServiceBabyShower:  true,
	ServiceBabyShoots:  true,
	ServiceEvent:       true,
	ServiceCorporate:   true,
	ServiceBirthday:    true,
	ServicePortfolio:   true,
}

// Valid reports whether s is a known service type
func (s ServiceType) Valid() bool {
	return serviceTypes[s]
}

// InquiryStatus tracks a booking inquiry through the admin workflow
type InquiryStatus string

const (
	StatusPending   InquiryStatus = "PENDING"
	StatusSeen      InquiryStatus = "SEEN"
	StatusReplied   InquiryStatus = "REPLIED"
	StatusConfirmed InquiryStatus = "CONFIRMED"
	StatusCompleted InquiryStatus = "COMPLETED"
	StatusCancelled InquiryStatus = "CANCELLED"
)

// Valid reports whether s is a known status
func (s InquiryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSeen, StatusReplied, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PhotoCategories lists the gallery categories used by the portfolio filters
var PhotoCategories = []string{
	"pre-wedding",
	"wedding",
	"post-wedding",
	"maternity",
	"baby-shower",
	"baby-shoots",
	"event",
	"corporate",
}
