// Package mail sends inquiry notifications to the agency inbox. Delivery is
// best-effort: callers persist first and only log a failed send.
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
)

// Sender delivers a single notification message.
type Sender interface {
	Send(subject, body string) error
}

// SMTPSender sends through a plain SMTP relay via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTPSender constructs an SMTPSender.
func NewSMTPSender(host string, port int, user, password, from, to string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		to:     to,
	}
}

// Send delivers one plain-text message to the configured inbox.
func (s *SMTPSender) Send(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("sending mail %q: %w", subject, err)
	}
	return nil
}

// Discard is a Sender that drops every message, used when SMTP is not
// configured.
type Discard struct{}

func (Discard) Send(subject, body string) error { return nil }

// ContactMessage formats the notification for a contact-form submission.
func ContactMessage(c *model.ContactInquiry) (subject, body string) {
	subject = fmt.Sprintf("New contact inquiry from %s", c.Name)
	body = fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nSubject: %s\n\n%s\n",
		c.Name, c.Email, c.Phone, c.Subject, c.Message)
	return subject, body
}

// EnquiryMessage formats the notification for a package booking enquiry.
func EnquiryMessage(e *model.PackageEnquiry) (subject, body string) {
	pkg := e.PackageName
	if pkg == "" {
		pkg = "general enquiry"
	}
	subject = fmt.Sprintf("New package enquiry: %s", pkg)
	body = fmt.Sprintf(
		"Package: %s\nName: %s\nEmail: %s\nPhone: %s\nTravel date: %s\nTravelers: %d\n\n%s\n",
		pkg, e.Name, e.Email, e.Phone, e.TravelDate, e.Travelers, e.Message)
	return subject, body
}
