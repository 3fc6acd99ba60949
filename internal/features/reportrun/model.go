package reportrun

import (
	"errors"
	"time"

	common_models "go-assetreport/internal/common/models"
	"go-assetreport/internal/features/columns"
	"go-assetreport/internal/features/timewindow"
)

// Fatal configuration errors. Everything else degrades locally.
var (
	ErrNoOrganization = errors.New("report run requires an organization context")
	ErrNoSources      = errors.New("report run requires at least one data source")
	ErrUnknownSource  = errors.New("report run config names an unknown data source")
	ErrNoColumns      = errors.New("report run requires at least one selected column")
	ErrStaleRun       = errors.New("report run superseded by a newer run")
)

// State tracks the executor pipeline position for one run.
type State string

const (
	StateIdle        State = "idle"
	StateDiscovering State = "discovering"
	StateFetching    State = "fetching"
	StateSelecting   State = "selecting"
	StateEnriching   State = "enriching"
	StateDone        State = "done"
	StateError       State = "error"
)

// RangeSpec is the symbolic time window stored in a config. It is resolved
// against the clock on every run, so a saved report stays re-runnable.
type RangeSpec struct {
	Kind        timewindow.Kind `json:"kind" bson:"kind"`
	CustomStart *time.Time      `json:"custom_start,omitempty" bson:"custom_start,omitempty"`
	CustomEnd   *time.Time      `json:"custom_end,omitempty" bson:"custom_end,omitempty"`
}

// ReportConfig is the full composed report: sources, scope, window, view
// mode and the ordered column model. JSON/BSON serializable for templates.
type ReportConfig struct {
	DataSources []string                `json:"data_sources" bson:"data_sources"`
	AssetTypes  []string                `json:"asset_types" bson:"asset_types"` // empty means all
	DateRange   RangeSpec               `json:"date_range" bson:"date_range"`
	ViewMode    common_models.ViewMode  `json:"view_mode" bson:"view_mode"`
	Columns     *columns.Model          `json:"columns" bson:"columns"`
	Filters     []common_models.Filter  `json:"filters,omitempty" bson:"filters,omitempty"`
}

// ReportRow is one fully enriched, export-ready record. Rows are rebuilt
// fresh on every run and never mutated afterwards.
type ReportRow struct {
	SubjectName     string            `json:"subject_name"`
	AssetType       string            `json:"asset_type"`
	SubmissionDate  *time.Time        `json:"submission_date"`
	Fields          map[string]string `json:"fields"`
	LastPeriodTotal string            `json:"last_period_total,omitempty"`
}

// RunStats counts the faults absorbed during a run; surfaced as a
// non-blocking summary after Done.
type RunStats struct {
	SourceFailures  int      `json:"source_failures"`
	EnrichmentGaps  int      `json:"enrichment_gaps"`
	FormulaFailures int      `json:"formula_failures"`
	Warnings        []string `json:"warnings,omitempty"`
}

// RunResult is the output of one completed run.
type RunResult struct {
	RunID  int64                `json:"run_id"`
	Window timewindow.DateRange `json:"window"`
	Rows   []ReportRow          `json:"rows"`
	Stats  RunStats             `json:"stats"`
}
