package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"studio-backend/internal/models"
)

// Site carries the studio details printed in every email.
type Site struct {
	StudioName       string
	StudioPhone      string
	PhotographerName string
	AdminEmail       string
	WebsiteURL       string
}

const headerBlock = `
<div style="background: linear-gradient(135deg, {{.From}}, {{.To}}); padding: 20px; text-align: center;">
  <h1 style="color: white; margin: 0;">{{.Title}}</h1>
  <p style="color: white; margin: 5px 0;">{{.Studio}}</p>
</div>`

var templates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"when": formatWhen,
}).Parse(`
{{define "header"}}` + headerBlock + `{{end}}

{{define "inquiry_admin"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  {{template "header" .Header}}
  <div style="padding: 30px; background: #f9f9f9;">
    <h2 style="color: #333; margin-bottom: 20px;">Client Details</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 10px; font-weight: bold;">Name:</td><td style="padding: 10px;">{{.Inquiry.FullName}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Phone:</td><td style="padding: 10px;">{{.Inquiry.PhoneNumber}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Email:</td><td style="padding: 10px;">{{or .Inquiry.Email "Not provided"}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Service:</td><td style="padding: 10px;">{{.Inquiry.ServiceType}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Preferred Date:</td><td style="padding: 10px;">{{.Inquiry.PreferredDate}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Location:</td><td style="padding: 10px;">{{or .Inquiry.Location "Not specified"}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold; vertical-align: top;">Message:</td><td style="padding: 10px;">{{or .Inquiry.Message "No additional message"}}</td></tr>
    </table>
    <div style="margin-top: 30px; padding: 20px; background: white; border-left: 4px solid #d97706;">
      <p style="margin: 0; color: #666;">
        <strong>Inquiry ID:</strong> {{.Inquiry.ID}}<br>
        <strong>Submitted:</strong> {{when .Inquiry.CreatedAt}}
      </p>
    </div>
  </div>
  <div style="background: #333; color: white; padding: 20px; text-align: center;">
    <p style="margin: 0;">{{.Site.StudioName}}</p>
    <p style="margin: 5px 0;">Contact: {{.Site.StudioPhone}}</p>
  </div>
</div>
{{end}}

{{define "inquiry_client"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  {{template "header" .Header}}
  <div style="padding: 30px; background: #f9f9f9;">
    <h2 style="color: #333;">Dear {{.Inquiry.FullName}},</h2>
    <p style="color: #666; line-height: 1.6;">
      Thank you for your interest in our photography services! We have received your inquiry for
      <strong>{{.Inquiry.ServiceType}}</strong> and will get back to you within 24 hours.
    </p>
    <div style="background: white; padding: 20px; margin: 20px 0; border-left: 4px solid #d97706;">
      <h3 style="color: #333; margin-top: 0;">Your Inquiry Details:</h3>
      <p style="color: #666; margin: 5px 0;"><strong>Service:</strong> {{.Inquiry.ServiceType}}</p>
      <p style="color: #666; margin: 5px 0;"><strong>Preferred Date:</strong> {{.Inquiry.PreferredDate}}</p>
      <p style="color: #666; margin: 5px 0;"><strong>Location:</strong> {{or .Inquiry.Location "To be discussed"}}</p>
      <p style="color: #666; margin: 5px 0;"><strong>Inquiry ID:</strong> {{.Inquiry.ID}}</p>
    </div>
    <p style="color: #666; line-height: 1.6;">
      In the meantime, feel free to browse our portfolio and learn more about our services.
      If you have any urgent questions, please call us at <strong>{{.Site.StudioPhone}}</strong>.
    </p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.PortfolioURL}}" style="background: #d97706; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">View Our Portfolio</a>
    </div>
  </div>
  <div style="background: #333; color: white; padding: 20px; text-align: center;">
    <p style="margin: 0;"><strong>{{.Site.StudioName}}</strong></p>
    <p style="margin: 5px 0;">Photographer: {{.Site.PhotographerName}}</p>
    <p style="margin: 5px 0;">Phone: {{.Site.StudioPhone}}</p>
    <p style="margin: 5px 0;">Email: {{.Site.AdminEmail}}</p>
  </div>
</div>
{{end}}

{{define "admin_login"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  {{template "header" .Header}}
  <div style="padding: 30px; background: #f9f9f9;">
    <h2 style="color: #333;">Command Center Access</h2>
    <div style="background: white; padding: 20px; border-left: 4px solid #dc2626;">
      <p style="color: #666; margin: 5px 0;"><strong>Login Time:</strong> {{when .Login.Timestamp}}</p>
      <p style="color: #666; margin: 5px 0;"><strong>Email:</strong> {{.Login.Email}}</p>
      <p style="color: #666; margin: 5px 0;"><strong>IP Address:</strong> {{or .Login.IP "Unknown"}}</p>
      <p style="color: #666; margin: 5px 0;"><strong>User Agent:</strong> {{or .Login.UserAgent "Unknown"}}</p>
    </div>
    <p style="color: #666; line-height: 1.6; margin-top: 20px;">
      If this login was not authorized by you, please secure your account immediately.
    </p>
  </div>
  <div style="background: #333; color: white; padding: 20px; text-align: center;">
    <p style="margin: 0;">{{.Site.StudioName}} - Security Alert</p>
  </div>
</div>
{{end}}
`))

type header struct {
	Title  string
	Studio string
	From   template.CSS
	To     template.CSS
}

// Email is a rendered subject and HTML body.
type Email struct {
	Subject string
	HTML    string
}

func renderInquiryAdmin(site Site, inquiry models.BookingInquiry) (Email, error) {
	html, err := render("inquiry_admin", map[string]any{
		"Header":  header{Title: "New Booking Inquiry", Studio: site.StudioName, From: "#d97706", To: "#f59e0b"},
		"Inquiry": inquiry,
		"Site":    site,
	})
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: fmt.Sprintf("New Booking Inquiry - %s", inquiry.ServiceType),
		HTML:    html,
	}, nil
}

func renderInquiryClient(site Site, inquiry models.BookingInquiry) (Email, error) {
	html, err := render("inquiry_client", map[string]any{
		"Header":       header{Title: "Thank You!", Studio: site.StudioName, From: "#d97706", To: "#f59e0b"},
		"Inquiry":      inquiry,
		"Site":         site,
		"PortfolioURL": site.WebsiteURL + "/portfolio",
	})
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: fmt.Sprintf("Thank you for your inquiry - %s", site.StudioName),
		HTML:    html,
	}, nil
}

func renderAdminLogin(site Site, login LoginDetails) (Email, error) {
	html, err := render("admin_login", map[string]any{
		"Header": header{Title: "Owner Login Alert", Studio: site.StudioName, From: "#dc2626", To: "#ef4444"},
		"Login":  login,
		"Site":   site,
	})
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: fmt.Sprintf("Owner Login Alert - %s", site.StudioName),
		HTML:    html,
	}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatWhen(ts string) string {
	t, ok := models.ParseTime(ts)
	if !ok {
		return ts
	}
	return t.UTC().Format("02 Jan 2006, 15:04 MST")
}

// LoginDetails describes a successful Command Center login.
type LoginDetails struct {
	Email     string
	IP        string
	UserAgent string
	Timestamp string
}

// NewLoginDetails stamps the current time.
func NewLoginDetails(email, ip, userAgent string) LoginDetails {
	return LoginDetails{
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Timestamp: models.FormatTime(time.Now()),
	}
}
