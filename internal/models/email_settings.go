package models

import "time"

// Email providers supported by the notification sender.
const (
	ProviderGmail    = "gmail"
	ProviderSMTP     = "smtp"
	ProviderSendgrid = "sendgrid"
	ProviderResend   = "resend"
)

// EmailSettings is a singleton record (id "default") holding the outbound
// notification configuration. Configured is derived from whether the
// selected provider's mandatory fields are filled in.
type EmailSettings struct {
	ID             string    `json:"id"`
	Provider       string    `json:"provider"`
	RecipientEmail string    `json:"recipientEmail"`
	SenderEmail    string    `json:"senderEmail"`
	SMTPHost       string    `json:"smtpHost"`
	SMTPPort       int       `json:"smtpPort"`
	SMTPUsername   string    `json:"smtpUsername"`
	SMTPPassword   string    `json:"-"`
	APIKey         string    `json:"-"`
	Configured     bool      `json:"configured"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SaveEmailSettingsRequest is the request body for saving email settings.
type SaveEmailSettingsRequest struct {
	Provider       string `json:"provider"`
	RecipientEmail string `json:"recipientEmail"`
	SenderEmail    string `json:"senderEmail"`
	SMTPHost       string `json:"smtpHost"`
	SMTPPort       int    `json:"smtpPort"`
	SMTPUsername   string `json:"smtpUsername"`
	SMTPPassword   string `json:"smtpPassword"`
	APIKey         string `json:"apiKey"`
}
