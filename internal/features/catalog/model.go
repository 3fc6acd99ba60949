package catalog

// ValueType describes what a column's cells hold.
type ValueType string

const (
	ValueTypeText       ValueType = "text"
	ValueTypeNumber     ValueType = "number"
	ValueTypeDate       ValueType = "date"
	ValueTypeBoolean    ValueType = "boolean"
	ValueTypeColor      ValueType = "color"
	ValueTypeCalculated ValueType = "calculated"
)

// Origin tracks which namespace a descriptor came from.
type Origin string

const (
	OriginStatic     Origin = "static"
	OriginForm       Origin = "form"
	OriginConversion Origin = "conversion"
	OriginCalculated Origin = "calculated"
	OriginColor      Origin = "color"
)

// Well-known field ids. Form and conversion fields are namespaced
// (form_field.<formId>.<fieldId>, conversion.<assetTypeId>.<name>) so ids
// stay globally unique; static fields use their plain name.
const (
	FieldRecordSource    = "record_source"
	FieldAssetType       = "asset_type"
	FieldLastUpdated     = "last_updated"
	FieldLastPeriodTotal = "last_period_total"
	FieldPrice           = "price"
	FieldUnitType        = "unit_type"
	FieldPriceDisplay    = "price_display"
	FieldColorFill       = "color_fill"
)

// FieldDescriptor is the metadata for one reportable column.
type FieldDescriptor struct {
	ID           string    `json:"id" bson:"id"`
	Label        string    `json:"label" bson:"label"`
	ValueType    ValueType `json:"value_type" bson:"value_type"`
	Origin       Origin    `json:"origin" bson:"origin"`
	Aggregatable bool      `json:"aggregatable" bson:"aggregatable"`
	Sortable     bool      `json:"sortable" bson:"sortable"`
	Filterable   bool      `json:"filterable" bson:"filterable"`
	Format       string    `json:"format,omitempty" bson:"format,omitempty"`
}
