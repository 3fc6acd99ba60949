package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ContextKey string

const (
	OrgIDKey ContextKey = "org_id"
)

// ViewMode controls which submissions represent a subject in a run.
type ViewMode string

const (
	ViewModeLatest     ViewMode = "latest"
	ViewModeHistory    ViewMode = "history"
	ViewModeComparison ViewMode = "comparison" // behaves as history; no diffing algorithm exists yet
)

// Filter is the wire shape for source-level filtering.
type Filter struct {
	Field    string      `json:"field" bson:"field"`
	Operator string      `json:"operator" bson:"operator"` // eq, ne, gt, lt, gte, lte, in, contains
	Value    interface{} `json:"value" bson:"value"`
}

// Submission is one timestamped set of form values recorded against a subject.
type Submission struct {
	ID        string                 `json:"id" bson:"_id,omitempty"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
	Data      map[string]interface{} `json:"data" bson:"data"`
}

// PriceSnapshot is one entry in a subject's price history. History is
// immutable; the effective snapshot for an as-of date is the one with the
// greatest EffectiveDate not exceeding it.
type PriceSnapshot struct {
	Price         decimal.Decimal `json:"price" bson:"price"`
	Currency      string          `json:"currency" bson:"currency"`
	UnitType      string          `json:"unit_type" bson:"unit_type"`
	EffectiveDate time.Time       `json:"effective_date" bson:"effective_date"`
}

// Subject is the entity a report row describes: an asset or inventory item
// with its submission history (newest first) and price history.
type Subject struct {
	ID           string          `json:"id" bson:"_id,omitempty"`
	Name         string          `json:"name" bson:"name"`
	AssetTypeID  string          `json:"asset_type_id" bson:"asset_type_id"`
	Source       string          `json:"source" bson:"source"`
	Submissions  []Submission    `json:"submissions" bson:"submissions"`
	PriceHistory []PriceSnapshot `json:"price_history" bson:"price_history"`
}

// RenderValue produces the display string for a raw field value. Object
// values prefer value/amount/quantity keys; anything else falls back to a
// stable serialization so unknown shapes still produce a cell.
func RenderValue(val interface{}) string {
	if val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case map[string]interface{}:
		for _, key := range []string{"value", "amount", "quantity"} {
			if inner, ok := v[key]; ok && inner != nil {
				return RenderValue(inner)
			}
		}
		if raw, err := json.Marshal(v); err == nil {
			return string(raw)
		}
		return fmt.Sprintf("%v", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
