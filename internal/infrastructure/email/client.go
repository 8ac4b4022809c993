// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"

	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/email/templates"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendWelcomeEmail(toEmail, name, storeURL string) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

// NewService creates a new email service client, returning the Service interface.
// Returns an error when no API key is configured; callers treat that as email
// being disabled.
func NewService(apiKey, fromEmail, fromName string) (Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	if fromEmail == "" {
		fromEmail = "noreply@tiendo.example"
	}
	if fromName == "" {
		fromName = "Tiendo"
	}

	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

// SendWelcomeEmail composes and sends the post-registration welcome email.
func (c *ResendClient) SendWelcomeEmail(toEmail, name, storeURL string) error {
	subject := "Bienvenido a Tiendo"

	content := templates.GetWelcomeEmailContent(templates.WelcomeEmailProps{
		Name:     name,
		StoreURL: storeURL,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: "Tu cuenta en Tiendo ha sido creada",
		Content:   content,
	})

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlContent,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send welcome email via Resend: %w", err)
	}
	return nil
}
