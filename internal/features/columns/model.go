package columns

import "go-assetreport/internal/features/catalog"

// ColumnEntry is one selectable, orderable report column. Order is defined
// iff the entry is selected; across all selected entries the defined orders
// are always a contiguous 1..N permutation.
type ColumnEntry struct {
	Field    catalog.FieldDescriptor `json:"field" bson:"field"`
	Selected bool                    `json:"selected" bson:"selected"`
	Order    *int                    `json:"order,omitempty" bson:"order,omitempty"`
	Color    string                  `json:"color,omitempty" bson:"color,omitempty"`
	Width    string                  `json:"width,omitempty" bson:"width,omitempty"`
	Formula  string                  `json:"formula,omitempty" bson:"formula,omitempty"`
}

// MoveDirection for Model.Move.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)
