package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	idSuffixLength = 7
	idSuffixChars  = "0123456789abcdefghijklmnopqrstuvwxyz"

	// TimeLayout matches the ISO-8601 strings already stored by the site
	// (millisecond precision, UTC "Z" suffix).
	TimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Photo represents a gallery photo
type Photo struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Category           string `json:"category"`
	ImageURL           string `json:"imageUrl"`
	CloudinaryPublicID string `json:"cloudinaryPublicId,omitempty"`
	IsActive           bool   `json:"isActive"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
	UploadedAt         string `json:"uploadedAt,omitempty"`
}

// Admin represents the Command Center owner account
type Admin struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// AdminSummary is the identity returned to the console after login
type AdminSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary strips the password hash and timestamps
func (a Admin) Summary() AdminSummary {
	return AdminSummary{ID: a.ID, Name: a.Name, Email: a.Email}
}

// BookingInquiry represents a contact form submission
type BookingInquiry struct {
	ID            string        `json:"id"`
	FullName      string        `json:"fullName"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phoneNumber"`
	Location      string        `json:"location"`
	ServiceType   ServiceType   `json:"serviceType"`
	PreferredDate string        `json:"preferredDate"`
	Message       string        `json:"message"`
	Status        InquiryStatus `json:"status"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// SystemSettings is the singleton stored under the system_settings key
type SystemSettings struct {
	Initialized bool   `json:"initialized"`
	Version     string `json:"version"`
	LastBackup  string `json:"lastBackup"`
}

// Testimonial is a client review shown on the home page
type Testimonial struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Image     string `json:"image"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	Event     string `json:"event"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

// PhotoPackage is a priced service bundle
type PhotoPackage struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Price           float64     `json:"price"`
	ServiceCategory ServiceType `json:"serviceCategory"`
	ImageURL        string      `json:"imageUrl"`
	Features        string      `json:"features"`
	IsActive        bool        `json:"isActive"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

// NewID returns "<prefix>_<unix millis>_<7 random base36 chars>"
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	suffix := make([]byte, idSuffixLength)
	for i := range suffix {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(idSuffixChars))))
		suffix[i] = idSuffixChars[n.Int64()]
	}
	return string(suffix)
}

// Now returns the current time formatted with TimeLayout
func Now() string {
	return FormatTime(time.Now())
}

// FormatTime formats t in UTC with TimeLayout
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses an ISO-8601 timestamp. Empty or malformed values yield the
// zero time and false.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
