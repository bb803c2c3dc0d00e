package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stock-backend/internal/models"
)

type EmailSettingsRepository struct {
	DB *pgxpool.Pool
}

func NewEmailSettingsRepository(db *pgxpool.Pool) *EmailSettingsRepository {
	return &EmailSettingsRepository{DB: db}
}

// Get returns the singleton settings row, or (nil, nil) when none saved.
func (r *EmailSettingsRepository) Get(ctx context.Context) (*models.EmailSettings, error) {
	var s models.EmailSettings
	err := r.DB.QueryRow(ctx,
		`SELECT id, provider, recipient_email, sender_email, smtp_host, smtp_port,
                smtp_username, smtp_password, api_key, configured, updated_at
         FROM email_settings WHERE id='default'`,
	).Scan(&s.ID, &s.Provider, &s.RecipientEmail, &s.SenderEmail, &s.SMTPHost, &s.SMTPPort,
		&s.SMTPUsername, &s.SMTPPassword, &s.APIKey, &s.Configured, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *EmailSettingsRepository) Save(ctx context.Context, s *models.EmailSettings) error {
	s.ID = "default"
	s.UpdatedAt = time.Now().UTC()
	_, err := r.DB.Exec(ctx,
		`INSERT INTO email_settings(id, provider, recipient_email, sender_email, smtp_host,
                                    smtp_port, smtp_username, smtp_password, api_key, configured, updated_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         ON CONFLICT (id) DO UPDATE SET
             provider=EXCLUDED.provider,
             recipient_email=EXCLUDED.recipient_email,
             sender_email=EXCLUDED.sender_email,
             smtp_host=EXCLUDED.smtp_host,
             smtp_port=EXCLUDED.smtp_port,
             smtp_username=EXCLUDED.smtp_username,
             smtp_password=EXCLUDED.smtp_password,
             api_key=EXCLUDED.api_key,
             configured=EXCLUDED.configured,
             updated_at=EXCLUDED.updated_at`,
		s.ID, s.Provider, s.RecipientEmail, s.SenderEmail, s.SMTPHost,
		s.SMTPPort, s.SMTPUsername, s.SMTPPassword, s.APIKey, s.Configured, s.UpdatedAt)
	return err
}
