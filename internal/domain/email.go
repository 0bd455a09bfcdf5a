package domain

import "context"

// Mailer sends an email with html and text bodies. Delivery is an external
// concern; implementations may be SES-backed or no-ops.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template with data and returns
// subject, html body, and text body.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// InvitationEmailData is the data for the event invitation email template.
type InvitationEmailData struct {
	Email      string
	UserName   string
	EventTitle string
	EventStart string
}

// EmailService sends domain emails.
type EmailService interface {
	SendEventInvitation(ctx context.Context, data *InvitationEmailData) error
}
