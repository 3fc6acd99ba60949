package template

import (
	"time"

	"go-assetreport/internal/features/reportrun"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportTemplate is a named, persisted report configuration, scoped to an
// organization. Created by explicit save, destroyed by explicit delete;
// independent of any run's rows.
type ReportTemplate struct {
	ID          primitive.ObjectID      `json:"id" bson:"_id,omitempty"`
	OrgID       string                  `json:"org_id" bson:"org_id"`
	Name        string                  `json:"name" bson:"name"`
	Description string                  `json:"description" bson:"description"`
	Config      reportrun.ReportConfig  `json:"config" bson:"config"`
	CreatedAt   time.Time               `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at" bson:"updated_at"`
}
