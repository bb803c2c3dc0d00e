package services

import (
	"context"
	"errors"
	"testing"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/memstore"
	"stock-backend/internal/models"
)

func TestGetSettingsDefault(t *testing.T) {
	store := memstore.New()
	service := NewSettingsService(store.Settings, newStubNotifier())

	settings, err := service.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.Provider != models.ProviderSMTP {
		t.Errorf("provider = %q, want smtp default", settings.Provider)
	}
	if settings.Configured {
		t.Error("fresh settings should not be configured")
	}
}

func TestSaveSettingsDerivesConfigured(t *testing.T) {
	tests := []struct {
		name       string
		req        models.SaveEmailSettingsRequest
		configured bool
	}{
		{
			name: "gmail complete",
			req: models.SaveEmailSettingsRequest{
				Provider:       models.ProviderGmail,
				RecipientEmail: "ops@fairfield.com",
				SMTPUsername:   "sender@gmail.com",
				SMTPPassword:   "app-password",
			},
			configured: true,
		},
		{
			name: "gmail without password",
			req: models.SaveEmailSettingsRequest{
				Provider:       models.ProviderGmail,
				RecipientEmail: "ops@fairfield.com",
				SMTPUsername:   "sender@gmail.com",
			},
			configured: false,
		},
		{
			name: "sendgrid with key",
			req: models.SaveEmailSettingsRequest{
				Provider:       models.ProviderSendgrid,
				RecipientEmail: "ops@fairfield.com",
				APIKey:         "SG.xyz",
			},
			configured: true,
		},
		{
			name: "resend without key",
			req: models.SaveEmailSettingsRequest{
				Provider:       models.ProviderResend,
				RecipientEmail: "ops@fairfield.com",
			},
			configured: false,
		},
		{
			name: "smtp complete",
			req: models.SaveEmailSettingsRequest{
				Provider:       models.ProviderSMTP,
				RecipientEmail: "ops@fairfield.com",
				SMTPHost:       "mail.fairfield.com",
				SMTPPort:       2525,
				SMTPUsername:   "stock",
				SMTPPassword:   "pw",
			},
			configured: true,
		},
		{
			name: "missing recipient",
			req: models.SaveEmailSettingsRequest{
				Provider:     models.ProviderGmail,
				SMTPUsername: "sender@gmail.com",
				SMTPPassword: "app-password",
			},
			configured: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			service := NewSettingsService(store.Settings, newStubNotifier())

			settings, err := service.SaveSettings(context.Background(), &tt.req)
			if err != nil {
				t.Fatalf("SaveSettings: %v", err)
			}
			if settings.Configured != tt.configured {
				t.Errorf("configured = %v, want %v", settings.Configured, tt.configured)
			}
		})
	}
}

func TestSaveSettingsRejectsBadInput(t *testing.T) {
	store := memstore.New()
	service := NewSettingsService(store.Settings, newStubNotifier())
	ctx := context.Background()

	var verr *apperrors.ValidationError
	_, err := service.SaveSettings(ctx, &models.SaveEmailSettingsRequest{Provider: "pigeon"})
	if !errors.As(err, &verr) {
		t.Errorf("unknown provider: err = %v, want ValidationError", err)
	}

	_, err = service.SaveSettings(ctx, &models.SaveEmailSettingsRequest{
		Provider:       models.ProviderSMTP,
		RecipientEmail: "not-an-address",
	})
	if !errors.As(err, &verr) {
		t.Errorf("bad recipient: err = %v, want ValidationError", err)
	}
}

func TestSaveSettingsPreservesBlankSecrets(t *testing.T) {
	store := memstore.New()
	service := NewSettingsService(store.Settings, newStubNotifier())
	ctx := context.Background()

	if _, err := service.SaveSettings(ctx, &models.SaveEmailSettingsRequest{
		Provider:       models.ProviderGmail,
		RecipientEmail: "ops@fairfield.com",
		SMTPUsername:   "sender@gmail.com",
		SMTPPassword:   "original-secret",
		APIKey:         "original-key",
	}); err != nil {
		t.Fatal(err)
	}

	// The UI resubmits the form with masked secrets left blank.
	updated, err := service.SaveSettings(ctx, &models.SaveEmailSettingsRequest{
		Provider:       models.ProviderGmail,
		RecipientEmail: "warehouse@fairfield.com",
		SMTPUsername:   "sender@gmail.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.SMTPPassword != "original-secret" {
		t.Errorf("smtpPassword = %q, want stored secret preserved", updated.SMTPPassword)
	}
	if updated.APIKey != "original-key" {
		t.Errorf("apiKey = %q, want stored key preserved", updated.APIKey)
	}
	if updated.RecipientEmail != "warehouse@fairfield.com" {
		t.Errorf("recipientEmail = %q, want updated value", updated.RecipientEmail)
	}
	if !updated.Configured {
		t.Error("settings should remain configured after resubmit")
	}
}

func TestSendTest(t *testing.T) {
	store := memstore.New()
	notifier := newStubNotifier()
	service := NewSettingsService(store.Settings, notifier)
	ctx := context.Background()

	var verr *apperrors.ValidationError
	if err := service.SendTest(ctx); !errors.As(err, &verr) {
		t.Fatalf("unconfigured: err = %v, want ValidationError", err)
	}

	if _, err := service.SaveSettings(ctx, &models.SaveEmailSettingsRequest{
		Provider:       models.ProviderSendgrid,
		RecipientEmail: "ops@fairfield.com",
		APIKey:         "SG.xyz",
	}); err != nil {
		t.Fatal(err)
	}
	if err := service.SendTest(ctx); err != nil {
		t.Fatalf("SendTest: %v", err)
	}

	ev := notifier.waitForEvent(t)
	if !ev.IsTest {
		t.Error("test send not flagged as test")
	}
	if ev.Transfer.ID != "TRF-TEST" {
		t.Errorf("transfer id = %q, want synthetic TRF-TEST", ev.Transfer.ID)
	}

	notifier.err = errors.New("relay refused")
	if err := service.SendTest(ctx); !errors.As(err, &verr) {
		t.Errorf("send failure: err = %v, want ValidationError", err)
	}
}
