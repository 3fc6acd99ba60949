package sources

import (
	"context"

	common_models "go-assetreport/internal/common/models"
)

// The reportable sources form a closed, named set. There is no cross-source
// query planner; the engine unions fields by id and enriches per row.
const (
	SourceAssets       = "assets"
	SourceInventory    = "inventory"
	SourceSubmissions  = "submissions"
	SourcePriceHistory = "price_history"
)

// KnownSources lists every source the engine will accept, in catalog order.
var KnownSources = []string{SourceAssets, SourceInventory, SourceSubmissions, SourcePriceHistory}

func IsKnownSource(id string) bool {
	for _, s := range KnownSources {
		if s == id {
			return true
		}
	}
	return false
}

// FormField is one field of a custom form schema.
type FormField struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label" bson:"label"`
	Type  string `json:"type" bson:"type"`
}

// FormSchema describes a periodic submission form.
type FormSchema struct {
	ID     string      `json:"id" bson:"_id,omitempty"`
	Name   string      `json:"name" bson:"name"`
	Fields []FormField `json:"fields" bson:"fields"`
}

// ConversionField is a per-asset-type computed/unit-conversion column.
type ConversionField struct {
	FieldName string `json:"field_name" bson:"field_name"`
	Label     string `json:"label" bson:"label"`
	Type      string `json:"type" bson:"type"`
}

// AssetType links subjects to their forms and conversion fields.
type AssetType struct {
	ID               string            `json:"id" bson:"_id,omitempty"`
	Name             string            `json:"name" bson:"name"`
	LinkedFormIDs    []string          `json:"linked_form_ids" bson:"linked_form_ids"`
	ConversionFields []ConversionField `json:"conversion_fields" bson:"conversion_fields"`
}

// RecordSource turns a logical source + filters into subject rows. Failures
// surface as errors the executor catches per source.
type RecordSource interface {
	Fetch(ctx context.Context, sourceID string, filters []common_models.Filter) ([]common_models.Subject, error)
}

// FormSchemaProvider resolves custom form schemas for field discovery.
type FormSchemaProvider interface {
	GetFormSchema(ctx context.Context, formID string) (*FormSchema, error)
}

// AssetTypeProvider resolves asset type configuration, including the
// per-type conversion field definitions.
type AssetTypeProvider interface {
	GetAssetType(ctx context.Context, assetTypeID string) (*AssetType, error)
	ListAssetTypes(ctx context.Context) ([]AssetType, error)
	GetConversionFields(ctx context.Context, assetTypeID string) ([]ConversionField, error)
}

// PriceHistorySource serves a subject's price history when it lives outside
// the record source (the postgres-backed history table). May be nil; the
// executor then uses the history nested on the subject.
type PriceHistorySource interface {
	History(ctx context.Context, subjectID string) ([]common_models.PriceSnapshot, error)
}
