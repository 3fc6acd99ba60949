package pricing

import (
	"testing"
	"time"

	common_models "go-assetreport/internal/common/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func snap(price string, effective time.Time) common_models.PriceSnapshot {
	p, _ := decimal.NewFromString(price)
	return common_models.PriceSnapshot{
		Price:         p,
		Currency:      "USD",
		UnitType:      "each",
		EffectiveDate: effective,
	}
}

func TestResolve(t *testing.T) {
	resolver := NewPriceResolver(zap.NewNop())
	asOf := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	history := []common_models.PriceSnapshot{
		snap("12.50", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)),  // future, must be ignored
		snap("10.00", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),  // effective
		snap("8.00", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)), // superseded
	}

	got := resolver.Resolve("pump-a", asOf, history)

	if got.EffectiveDate.After(asOf) {
		t.Errorf("effective date %v is after as-of %v", got.EffectiveDate, asOf)
	}
	if !got.Price.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("price = %s, want 10.00", got.Price)
	}
}

func TestResolveUnorderedHistory(t *testing.T) {
	resolver := NewPriceResolver(zap.NewNop())
	asOf := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	history := []common_models.PriceSnapshot{
		snap("8.00", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)),
		snap("10.00", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}

	got := resolver.Resolve("pump-a", asOf, history)
	if !got.Price.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("price = %s, want 10.00", got.Price)
	}
}

func TestResolveDefaults(t *testing.T) {
	resolver := NewPriceResolver(zap.NewNop())
	asOf := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		history []common_models.PriceSnapshot
	}{
		{"empty history", nil},
		{"only future entries", []common_models.PriceSnapshot{
			snap("99.00", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve("pump-a", asOf, tt.history)
			if !got.Price.IsZero() {
				t.Errorf("price = %s, want 0", got.Price)
			}
			if got.Currency != "USD" || got.UnitType != "each" {
				t.Errorf("got %s/%s, want USD/each", got.Currency, got.UnitType)
			}
		})
	}
}
