package gateway

import (
	"context"
	"database/sql"

	"souq-be/internal/paylink"
)

// Default display strings, matching what merchants see before they touch
// the admin settings.
const (
	DefaultTitle        = "Paylink Payment Gateway"
	DefaultDescription  = "Seamless transactions with popular payment methods in the Kingdom of Saudi Arabia, including:"
	DefaultInstructions = "Thank you for your order, you will be redirected to Paylink payment page."
	DefaultFailMessage  = "Your payment has failed, please try again."
)

// Settings is the gateway configuration for one request lifecycle.
// Immutable after LoadSettings; persistence happens only through the
// settings repository.
type Settings struct {
	Enabled      bool
	Title        string
	Description  string
	TestMode     bool
	AppID        string
	SecretKey    string
	ShowInterim  bool
	Instructions string
	FailMessage  string
	CardBrands   string
	BaseURL      string
}

// SettingsRepository is the persisted key/value store behind the admin
// settings screen.
type SettingsRepository interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, value FROM gateway_settings
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		values[k] = v
	}
	return values, rows.Err()
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gateway_settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	return err
}

// LoadSettings reads the persisted settings and resolves the effective
// configuration: test mode swaps in the pilot credentials and host, the
// card-brand list is filtered against the valid set (and written back when
// it changed), and the gateway is disabled when live credentials are
// missing.
func LoadSettings(ctx context.Context, repo SettingsRepository) (*Settings, error) {
	values, err := repo.All(ctx)
	if err != nil {
		return nil, err
	}

	get := func(key, def string) string {
		if v, ok := values[key]; ok {
			return v
		}
		return def
	}

	s := &Settings{
		Enabled:      get("enabled", "yes") == "yes",
		Title:        get("title", DefaultTitle),
		Description:  get("description", DefaultDescription),
		TestMode:     get("test_mode", "yes") == "yes",
		ShowInterim:  get("display_thank_you", "yes") == "yes",
		Instructions: get("instructions", DefaultInstructions),
		FailMessage:  get("fail_msg", DefaultFailMessage),
	}

	if s.TestMode {
		s.AppID = paylink.TestAppID
		s.SecretKey = paylink.TestSecretKey
	} else {
		s.AppID = get("app_id", "")
		s.SecretKey = get("secret_key", "")
	}
	s.BaseURL = paylink.BaseURL(s.TestMode)

	rawBrands := get("card_brands", "")
	s.CardBrands = paylink.FilterCardBrands(rawBrands)
	if s.CardBrands != rawBrands {
		if err := repo.Set(ctx, "card_brands", s.CardBrands); err != nil {
			return nil, err
		}
	}

	if s.AppID == "" || s.SecretKey == "" {
		s.Enabled = false
		if err := repo.Set(ctx, "enabled", "no"); err != nil {
			return nil, err
		}
	}

	return s, nil
}
