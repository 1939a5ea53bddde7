package payment

import (
	"context"
	"testing"

	"github.com/mvaldesoto/storefront-backend/pkg/config"
)

func TestConfigGatewayAvailability(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	enabled := NewConfigGateway(config.GatewayConfig{Enabled: true, KeyID: "key_123"}, "usd")
	if !enabled.Available(ctx) {
		t.Fatal("expected gateway to be available")
	}

	disabled := NewConfigGateway(config.GatewayConfig{Enabled: false, KeyID: "key_123"}, "usd")
	if disabled.Available(ctx) {
		t.Fatal("disabled gateway should not be available")
	}

	keyless := NewConfigGateway(config.GatewayConfig{Enabled: true, KeyID: "  "}, "usd")
	if keyless.Available(ctx) {
		t.Fatal("keyless gateway should not be available")
	}
}

func TestConfigGatewayWidget(t *testing.T) {
	t.Parallel()

	gw := NewConfigGateway(config.GatewayConfig{
		Enabled:      true,
		KeyID:        "key_123",
		MerchantName: "Storefront",
		ThemeColor:   "#6366f1",
	}, "usd")

	widget := gw.Widget(5859, Prefill{Name: "Jordan Blake", Email: "j@example.com", Contact: "555-0100"})
	if widget.AmountMinor != 5859 {
		t.Fatalf("unexpected amount %d", widget.AmountMinor)
	}
	if widget.Currency != "USD" {
		t.Fatalf("currency not normalized: %q", widget.Currency)
	}
	if widget.Prefill.Email != "j@example.com" {
		t.Fatalf("prefill lost: %+v", widget.Prefill)
	}
}
