package payment

import (
	"context"
	"strings"

	"github.com/mvaldesoto/storefront-backend/pkg/config"
)

// Prefill seeds the external widget's contact fields.
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// WidgetConfig is everything the client needs to invoke the external
// checkout widget. Amounts are minor units of the currency.
type WidgetConfig struct {
	KeyID       string  `json:"key_id"`
	AmountMinor int64   `json:"amount_minor"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Prefill     Prefill `json:"prefill"`
	ThemeColor  string  `json:"theme_color"`
}

// Gateway is the external payment collaborator boundary. The core only
// depends on availability plus the widget payload; the success token or
// dismissal comes back through the checkout confirm/cancel entry points.
type Gateway interface {
	Available(ctx context.Context) bool
	Widget(amountMinor int64, prefill Prefill) WidgetConfig
}

// ConfigGateway reflects the configured widget. Availability mirrors the
// script-loaded signal of a hosted checkout: enabled and keyed, or degraded.
type ConfigGateway struct {
	cfg      config.GatewayConfig
	currency string
}

// NewConfigGateway builds the gateway boundary from configuration.
func NewConfigGateway(cfg config.GatewayConfig, currency string) *ConfigGateway {
	return &ConfigGateway{cfg: cfg, currency: strings.ToUpper(strings.TrimSpace(currency))}
}

func (g *ConfigGateway) Available(ctx context.Context) bool {
	return g.cfg.Enabled && strings.TrimSpace(g.cfg.KeyID) != ""
}

func (g *ConfigGateway) Widget(amountMinor int64, prefill Prefill) WidgetConfig {
	return WidgetConfig{
		KeyID:       g.cfg.KeyID,
		AmountMinor: amountMinor,
		Currency:    g.currency,
		Name:        g.cfg.MerchantName,
		Description: "Order Payment",
		Prefill:     prefill,
		ThemeColor:  g.cfg.ThemeColor,
	}
}
