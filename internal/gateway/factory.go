package gateway

import (
	"context"

	"souq-be/internal/cart"
	"souq-be/internal/order"
	"souq-be/internal/paylink"
)

// Factory builds a fresh Gateway per inbound request: settings are
// re-loaded from persistence and the token cache lives and dies with the
// request, so nothing mutable is shared across customers.
type Factory struct {
	settingsRepo SettingsRepository
	orders       order.Service
	carts        cart.Service
	notifier     Notifier
}

func NewFactory(settingsRepo SettingsRepository, orders order.Service, carts cart.Service, notifier Notifier) *Factory {
	return &Factory{
		settingsRepo: settingsRepo,
		orders:       orders,
		carts:        carts,
		notifier:     notifier,
	}
}

func (f *Factory) Gateway(ctx context.Context) (*Gateway, error) {
	settings, err := LoadSettings(ctx, f.settingsRepo)
	if err != nil {
		return nil, err
	}

	client := paylink.NewClient(settings.BaseURL)
	auth := paylink.NewAuthenticator(client, settings.AppID, settings.SecretKey)
	reporter := paylink.NewReporter(settings.AppID, settings.SecretKey)

	return New(settings, auth, client, f.orders, f.carts, reporter, f.notifier), nil
}
