package reportrun

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	common_models "go-assetreport/internal/common/models"
	"go-assetreport/internal/features/catalog"
	"go-assetreport/internal/features/enrich"
	"go-assetreport/internal/features/pricing"
	"go-assetreport/internal/features/selection"
	"go-assetreport/internal/features/timewindow"
	"go-assetreport/internal/sources"
	"go-assetreport/pkg/formula"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportExecutor orchestrates field discovery, fetching, selection and
// enrichment into a sequence of ReportRow values. One run per invocation;
// re-invoking restarts from discovery, and only the latest run's completion
// is delivered.
type ReportExecutor interface {
	Run(ctx context.Context, orgID string, cfg *ReportConfig) (*RunResult, error)
}

type ReportExecutorImpl struct {
	Records    sources.RecordSource
	Prices     sources.PriceHistorySource // may be nil; subjects then carry their own history
	AssetTypes sources.AssetTypeProvider
	Union      catalog.FieldUnionResolver
	PriceRes   pricing.PriceResolver
	Selector   selection.SubmissionSelector
	LastPeriod selection.LastPeriodTotalResolver
	Enricher   enrich.RecordEnricher
	Logger     *zap.Logger

	runSeq atomic.Int64
	now    func() time.Time
}

func NewReportExecutor(
	records sources.RecordSource,
	prices sources.PriceHistorySource,
	assetTypes sources.AssetTypeProvider,
	union catalog.FieldUnionResolver,
	priceRes pricing.PriceResolver,
	selector selection.SubmissionSelector,
	lastPeriod selection.LastPeriodTotalResolver,
	enricher enrich.RecordEnricher,
	logger *zap.Logger,
) ReportExecutor {
	return &ReportExecutorImpl{
		Records:    records,
		Prices:     prices,
		AssetTypes: assetTypes,
		Union:      union,
		PriceRes:   priceRes,
		Selector:   selector,
		LastPeriod: lastPeriod,
		Enricher:   enricher,
		Logger:     logger,
		now:        time.Now,
	}
}

func (s *ReportExecutorImpl) Run(ctx context.Context, orgID string, cfg *ReportConfig) (*RunResult, error) {
	runID := s.runSeq.Add(1)
	log := s.Logger.With(zap.Int64("run_id", runID))

	// Fatal config checks; these abort before any work happens.
	if orgID == "" {
		return nil, ErrNoOrganization
	}
	if len(cfg.DataSources) == 0 {
		return nil, ErrNoSources
	}
	for _, sourceID := range cfg.DataSources {
		if !sources.IsKnownSource(sourceID) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSource, sourceID)
		}
	}
	if cfg.Columns == nil || len(cfg.Columns.SelectedOrdered()) == 0 {
		return nil, ErrNoColumns
	}

	now := s.now()
	window := timewindow.Resolve(cfg.DateRange.Kind, now, cfg.DateRange.CustomStart, cfg.DateRange.CustomEnd)

	stats := RunStats{}
	warn := func(msg string, fields ...zap.Field) {
		stats.Warnings = append(stats.Warnings, msg)
		log.Warn(msg, fields...)
	}

	log.Debug("run state", zap.String("state", string(StateDiscovering)))
	union, err := s.Union.Resolve(ctx, cfg.DataSources, cfg.AssetTypes)
	if err != nil {
		log.Error("field discovery failed", zap.Error(err))
		return nil, err
	}

	assetTypeNames := s.assetTypeNames(ctx, log)

	log.Debug("run state", zap.String("state", string(StateFetching)))
	var subjects []common_models.Subject
	for _, sourceID := range cfg.DataSources {
		fetched, err := s.Records.Fetch(ctx, sourceID, cfg.Filters)
		if err != nil {
			stats.SourceFailures++
			warn(fmt.Sprintf("source %s failed, contributing zero subjects", sourceID),
				zap.String("source", sourceID), zap.Error(err))
			continue
		}
		subjects = append(subjects, fetched...)
	}

	histories := s.fetchPriceHistories(ctx, subjects, &stats, log)

	log.Debug("run state", zap.String("state", string(StateSelecting)))
	type pick struct {
		subject    common_models.Subject
		submission *common_models.Submission
	}
	var picks []pick
	for _, subject := range subjects {
		selected := s.Selector.Select(subject, cfg.ViewMode, window)
		if len(selected) == 0 {
			// latest mode still yields an empty-field row; windowed modes
			// contribute nothing for an unmatched subject
			if cfg.ViewMode == common_models.ViewModeLatest || cfg.ViewMode == "" {
				picks = append(picks, pick{subject: subject})
			}
			continue
		}
		for i := range selected {
			picks = append(picks, pick{subject: subject, submission: &selected[i]})
		}
	}

	log.Debug("run state", zap.String("state", string(StateEnriching)))
	rows := make([]ReportRow, 0, len(picks))
	for _, p := range picks {
		history := p.subject.PriceHistory
		if h, ok := histories[p.subject.ID]; ok {
			history = h
		}

		asOf := window.End
		var subDate *time.Time
		var raw map[string]interface{}
		if p.submission != nil {
			d := p.submission.CreatedAt
			subDate = &d
			asOf = d
			raw = p.submission.Data
		}

		snap := s.PriceRes.Resolve(p.subject.ID, asOf, history)
		fields := s.Enricher.Enrich(raw, snap, union)

		assetTypeName := assetTypeNames[p.subject.AssetTypeID]
		if assetTypeName == "" {
			assetTypeName = p.subject.AssetTypeID
		}
		setIfPresent(fields, catalog.FieldRecordSource, p.subject.Source)
		setIfPresent(fields, catalog.FieldAssetType, assetTypeName)
		if subDate != nil {
			setIfPresent(fields, catalog.FieldLastUpdated, subDate.Format("2006-01-02"))
		}

		lastTotal := s.LastPeriod.Resolve(p.subject, now)
		setIfPresent(fields, catalog.FieldLastPeriodTotal, lastTotal)

		for _, col := range cfg.Columns.SelectedOrdered() {
			if col.Formula == "" {
				continue
			}
			val, err := formula.NewEvaluator(col.Formula).Eval(fields)
			if err != nil {
				stats.FormulaFailures++
				warn(fmt.Sprintf("formula for column %s failed", col.Field.ID), zap.Error(err))
				val = ""
			}
			fields[col.Field.ID] = val
		}

		rows = append(rows, ReportRow{
			SubjectName:     p.subject.Name,
			AssetType:       assetTypeName,
			SubmissionDate:  subDate,
			Fields:          fields,
			LastPeriodTotal: lastTotal,
		})
	}

	// Last completed run wins: a completion is discarded once a newer run
	// has started.
	if s.runSeq.Load() != runID {
		log.Info("discarding stale run completion")
		return nil, ErrStaleRun
	}

	log.Debug("run state", zap.String("state", string(StateDone)))
	log.Info("report run complete",
		zap.Int("rows", len(rows)),
		zap.Int("source_failures", stats.SourceFailures),
		zap.Int("enrichment_gaps", stats.EnrichmentGaps))

	return &RunResult{
		RunID:  runID,
		Window: window,
		Rows:   rows,
		Stats:  stats,
	}, nil
}

// fetchPriceHistories pulls every subject's history from the external price
// source concurrently. Failures degrade to the subject's nested history.
func (s *ReportExecutorImpl) fetchPriceHistories(ctx context.Context, subjects []common_models.Subject, stats *RunStats, log *zap.Logger) map[string][]common_models.PriceSnapshot {
	histories := map[string][]common_models.PriceSnapshot{}
	if s.Prices == nil || len(subjects) == 0 {
		return histories
	}

	var mu sync.Mutex
	var failed []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range subjects {
		subject := subjects[i]
		g.Go(func() error {
			history, err := s.Prices.History(gctx, subject.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, subject.ID)
				return nil
			}
			histories[subject.ID] = history
			return nil
		})
	}
	g.Wait()

	for _, id := range failed {
		stats.EnrichmentGaps++
		msg := fmt.Sprintf("price history fetch failed for subject %s, using defaults", id)
		stats.Warnings = append(stats.Warnings, msg)
		log.Warn(msg, zap.String("subject_id", id))
	}

	return histories
}

func (s *ReportExecutorImpl) assetTypeNames(ctx context.Context, log *zap.Logger) map[string]string {
	names := map[string]string{}
	types, err := s.AssetTypes.ListAssetTypes(ctx)
	if err != nil {
		log.Warn("asset type names unavailable, falling back to ids", zap.Error(err))
		return names
	}
	for _, t := range types {
		names[t.ID] = t.Name
	}
	return names
}

func setIfPresent(fields map[string]string, id, val string) {
	if _, ok := fields[id]; ok {
		fields[id] = val
	}
}
