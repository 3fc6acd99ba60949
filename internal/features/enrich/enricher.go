package enrich

import (
	"fmt"

	common_models "go-assetreport/internal/common/models"
	"go-assetreport/internal/features/catalog"
)

// RecordEnricher merges a selected submission with the price snapshot and
// back-fills every unioned field, so every row has every column. Cells are
// explicit empty strings when the raw record lacks a field; exports and
// renders always produce a cell.
type RecordEnricher interface {
	Enrich(raw map[string]interface{}, snap common_models.PriceSnapshot, fields []catalog.FieldDescriptor) map[string]string
}

type RecordEnricherImpl struct{}

func NewRecordEnricher() RecordEnricher {
	return &RecordEnricherImpl{}
}

func (e *RecordEnricherImpl) Enrich(raw map[string]interface{}, snap common_models.PriceSnapshot, fields []catalog.FieldDescriptor) map[string]string {
	out := make(map[string]string, len(fields))

	priceFormatted := snap.Price.StringFixed(2)

	for _, field := range fields {
		switch field.ID {
		case catalog.FieldPrice:
			out[field.ID] = priceFormatted
		case catalog.FieldUnitType:
			out[field.ID] = snap.UnitType
		case catalog.FieldPriceDisplay:
			out[field.ID] = fmt.Sprintf("%s per %s", priceFormatted, snap.UnitType)
		default:
			if val, ok := raw[field.ID]; ok {
				out[field.ID] = common_models.RenderValue(val)
			} else {
				out[field.ID] = ""
			}
		}
	}

	return out
}
