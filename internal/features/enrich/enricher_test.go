package enrich

import (
	"testing"
	"time"

	common_models "go-assetreport/internal/common/models"
	"go-assetreport/internal/features/catalog"

	"github.com/shopspring/decimal"
)

func unionFields() []catalog.FieldDescriptor {
	return []catalog.FieldDescriptor{
		{ID: catalog.FieldPrice, Label: "Price"},
		{ID: catalog.FieldUnitType, Label: "Unit Type"},
		{ID: catalog.FieldPriceDisplay, Label: "Price Per Unit"},
		{ID: "form_field.f1.field_1", Label: "Reading"},
		{ID: "form_field.f1.field_2", Label: "Notes"},
		{ID: "conversion.t1.gallons", Label: "Gallons"},
	}
}

func TestEnrichCoversEveryField(t *testing.T) {
	snap := common_models.PriceSnapshot{
		Price:         decimal.RequireFromString("12.5"),
		Currency:      "USD",
		UnitType:      "gallon",
		EffectiveDate: time.Now(),
	}
	raw := map[string]interface{}{
		"form_field.f1.field_1": "120",
		"unrelated_key":         "ignored",
	}

	enricher := NewRecordEnricher()
	got := enricher.Enrich(raw, snap, unionFields())

	if len(got) != len(unionFields()) {
		t.Fatalf("got %d fields, want %d", len(got), len(unionFields()))
	}
	for _, f := range unionFields() {
		if _, ok := got[f.ID]; !ok {
			t.Errorf("missing field %s", f.ID)
		}
	}

	if got[catalog.FieldPrice] != "12.50" {
		t.Errorf("price = %q, want \"12.50\"", got[catalog.FieldPrice])
	}
	if got[catalog.FieldPriceDisplay] != "12.50 per gallon" {
		t.Errorf("price display = %q", got[catalog.FieldPriceDisplay])
	}
	if got["form_field.f1.field_1"] != "120" {
		t.Errorf("reading = %q, want \"120\"", got["form_field.f1.field_1"])
	}
	if got["form_field.f1.field_2"] != "" {
		t.Errorf("absent field = %q, want explicit empty string", got["form_field.f1.field_2"])
	}
	if _, ok := got["unrelated_key"]; ok {
		t.Error("unknown raw keys must not leak into the enriched row")
	}
}

func TestEnrichNilSubmission(t *testing.T) {
	enricher := NewRecordEnricher()
	got := enricher.Enrich(nil, common_models.PriceSnapshot{Price: decimal.Zero, UnitType: "each"}, unionFields())

	for id, val := range got {
		if id == catalog.FieldPrice || id == catalog.FieldUnitType || id == catalog.FieldPriceDisplay {
			continue
		}
		if val != "" {
			t.Errorf("field %s = %q, want empty", id, val)
		}
	}
	if got[catalog.FieldPrice] != "0.00" {
		t.Errorf("price = %q, want \"0.00\"", got[catalog.FieldPrice])
	}
}

func TestEnrichObjectValues(t *testing.T) {
	fields := []catalog.FieldDescriptor{{ID: "form_field.f1.reading"}}
	enricher := NewRecordEnricher()

	tests := []struct {
		name string
		val  interface{}
		want string
	}{
		{"value key", map[string]interface{}{"value": "42"}, "42"},
		{"amount key", map[string]interface{}{"amount": 10.5}, "10.5"},
		{"quantity key", map[string]interface{}{"quantity": float64(3)}, "3"},
		{"opaque object", map[string]interface{}{"weird": "shape"}, `{"weird":"shape"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enricher.Enrich(map[string]interface{}{"form_field.f1.reading": tt.val}, common_models.PriceSnapshot{Price: decimal.Zero}, fields)
			if got["form_field.f1.reading"] != tt.want {
				t.Errorf("got %q, want %q", got["form_field.f1.reading"], tt.want)
			}
		})
	}
}
