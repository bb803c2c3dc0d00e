package services

import (
	"context"
	"strings"
	"time"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/models"
	"stock-backend/internal/notify"
)

// SettingsService manages the singleton email configuration and the
// test-send flow.
type SettingsService struct {
	store    EmailSettingsStore
	notifier notify.Notifier
	now      func() time.Time
}

func NewSettingsService(store EmailSettingsStore, notifier notify.Notifier) *SettingsService {
	return &SettingsService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// GetSettings returns the saved configuration, or an unconfigured default
// when nothing has been saved yet. Secrets never appear in the response
// because the model hides them from JSON.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.EmailSettings, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &models.EmailSettings{ID: "default", Provider: models.ProviderSMTP}, nil
	}
	return settings, nil
}

// SaveSettings upserts the configuration. Blank secrets keep the stored
// values so the UI can resubmit the form without re-entering credentials.
// Configured is derived from the selected provider's mandatory fields.
func (s *SettingsService) SaveSettings(ctx context.Context, req *models.SaveEmailSettingsRequest) (*models.EmailSettings, error) {
	switch req.Provider {
	case models.ProviderGmail, models.ProviderSMTP, models.ProviderSendgrid, models.ProviderResend:
	default:
		return nil, apperrors.Validationf("unknown email provider %q", req.Provider)
	}
	recipient := strings.TrimSpace(req.RecipientEmail)
	if recipient != "" && !strings.Contains(recipient, "@") {
		return nil, apperrors.Validationf("recipientEmail is not a valid address")
	}

	existing, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings := &models.EmailSettings{
		ID:             "default",
		Provider:       req.Provider,
		RecipientEmail: recipient,
		SenderEmail:    strings.TrimSpace(req.SenderEmail),
		SMTPHost:       strings.TrimSpace(req.SMTPHost),
		SMTPPort:       req.SMTPPort,
		SMTPUsername:   strings.TrimSpace(req.SMTPUsername),
		SMTPPassword:   req.SMTPPassword,
		APIKey:         req.APIKey,
		UpdatedAt:      s.now().UTC(),
	}
	if existing != nil {
		if settings.SMTPPassword == "" {
			settings.SMTPPassword = existing.SMTPPassword
		}
		if settings.APIKey == "" {
			settings.APIKey = existing.APIKey
		}
	}
	settings.Configured = deriveConfigured(settings)

	if err := s.store.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SendTest sends a test notification with the saved configuration, using a
// synthetic transfer so the message exercises the real template.
func (s *SettingsService) SendTest(ctx context.Context) error {
	settings, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	if settings == nil || !settings.Configured {
		return apperrors.Validationf("email settings are not configured")
	}

	now := s.now().UTC()
	sample := &models.Transfer{
		ID:         "TRF-TEST",
		DriverName: "Test Driver",
		VehicleReg: "TEST-001",
		Status:     models.TransferReceived,
		Items: []models.TransferItem{
			{ProductCode: "SAMPLE", ProductName: "Sample Product", Quantity: 10, Unit: "boxes"},
		},
		ReceivedAt: &now,
	}
	ev := notify.Event{
		Transfer:     sample,
		FromLocation: "Main Warehouse",
		ToLocation:   "Branch Store",
		IsTest:       true,
	}
	if err := s.notifier.TransferReceived(ctx, ev); err != nil {
		return apperrors.Validationf("test email failed: %v", err)
	}
	return nil
}

// deriveConfigured checks the provider's mandatory fields.
func deriveConfigured(s *models.EmailSettings) bool {
	if s.RecipientEmail == "" {
		return false
	}
	switch s.Provider {
	case models.ProviderGmail:
		return s.SMTPUsername != "" && s.SMTPPassword != ""
	case models.ProviderSendgrid, models.ProviderResend:
		return s.APIKey != ""
	case models.ProviderSMTP:
		return s.SMTPHost != "" && s.SMTPUsername != "" && s.SMTPPassword != ""
	}
	return false
}
