package catalog

import "go-assetreport/internal/sources"

// FieldCatalog is the static registry of per-source column descriptors.
// Sources are a closed set; the registry is fixed at construction.
type FieldCatalog struct {
	bySource map[string][]FieldDescriptor
}

func NewFieldCatalog() *FieldCatalog {
	return &FieldCatalog{
		bySource: map[string][]FieldDescriptor{
			sources.SourceAssets: {
				{ID: FieldAssetType, Label: "Asset Type", ValueType: ValueTypeText, Origin: OriginStatic, Sortable: true, Filterable: true},
				{ID: FieldLastUpdated, Label: "Last Updated", ValueType: ValueTypeDate, Origin: OriginStatic, Sortable: true, Format: "2006-01-02"},
				{ID: "location", Label: "Location", ValueType: ValueTypeText, Origin: OriginStatic, Sortable: true, Filterable: true},
				{ID: "serial_number", Label: "Serial Number", ValueType: ValueTypeText, Origin: OriginStatic, Filterable: true},
				{ID: "status", Label: "Status", ValueType: ValueTypeText, Origin: OriginStatic, Sortable: true, Filterable: true},
			},
			sources.SourceInventory: {
				{ID: FieldAssetType, Label: "Asset Type", ValueType: ValueTypeText, Origin: OriginStatic, Sortable: true, Filterable: true},
				{ID: FieldLastUpdated, Label: "Last Updated", ValueType: ValueTypeDate, Origin: OriginStatic, Sortable: true, Format: "2006-01-02"},
				{ID: "quantity_on_hand", Label: "Quantity On Hand", ValueType: ValueTypeNumber, Origin: OriginStatic, Aggregatable: true, Sortable: true, Format: "#,##0"},
				{ID: "reorder_point", Label: "Reorder Point", ValueType: ValueTypeNumber, Origin: OriginStatic, Sortable: true, Format: "#,##0"},
				{ID: "sku", Label: "SKU", ValueType: ValueTypeText, Origin: OriginStatic, Filterable: true},
			},
			sources.SourceSubmissions: {
				{ID: FieldAssetType, Label: "Asset Type", ValueType: ValueTypeText, Origin: OriginStatic, Sortable: true, Filterable: true},
				{ID: FieldLastUpdated, Label: "Last Updated", ValueType: ValueTypeDate, Origin: OriginStatic, Sortable: true, Format: "2006-01-02"},
				{ID: FieldLastPeriodTotal, Label: "Last Period Total", ValueType: ValueTypeNumber, Origin: OriginStatic, Format: "#,##0.00"},
				{ID: "submission_count", Label: "Submission Count", ValueType: ValueTypeNumber, Origin: OriginStatic, Aggregatable: true, Sortable: true, Format: "#,##0"},
			},
			sources.SourcePriceHistory: {
				{ID: FieldPrice, Label: "Price", ValueType: ValueTypeNumber, Origin: OriginStatic, Aggregatable: true, Sortable: true, Format: "#,##0.00"},
				{ID: FieldUnitType, Label: "Unit Type", ValueType: ValueTypeText, Origin: OriginStatic, Filterable: true},
				{ID: FieldPriceDisplay, Label: "Price Per Unit", ValueType: ValueTypeText, Origin: OriginStatic},
			},
		},
	}
}

// StaticFields returns the registered descriptors for one source. The
// returned slice is a copy; callers may reorder it freely.
func (c *FieldCatalog) StaticFields(sourceID string) []FieldDescriptor {
	fields := c.bySource[sourceID]
	out := make([]FieldDescriptor, len(fields))
	copy(out, fields)
	return out
}

// RecordSourceField is included whenever at least one source is selected.
func RecordSourceField() FieldDescriptor {
	return FieldDescriptor{
		ID:         FieldRecordSource,
		Label:      "Record Source",
		ValueType:  ValueTypeText,
		Origin:     OriginStatic,
		Sortable:   true,
		Filterable: true,
	}
}
