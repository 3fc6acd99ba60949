package pricing

import (
	"time"

	common_models "go-assetreport/internal/common/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceResolver picks the historically correct snapshot for an as-of date.
type PriceResolver interface {
	Resolve(subjectID string, asOf time.Time, history []common_models.PriceSnapshot) common_models.PriceSnapshot
}

type PriceResolverImpl struct {
	Logger *zap.Logger
}

func NewPriceResolver(logger *zap.Logger) PriceResolver {
	return &PriceResolverImpl{Logger: logger}
}

// DefaultSnapshot is substituted when no history entry is effective at the
// as-of date. Missing history never fails a report.
func DefaultSnapshot() common_models.PriceSnapshot {
	return common_models.PriceSnapshot{
		Price:    decimal.NewFromFloat(0.00),
		Currency: "USD",
		UnitType: "each",
	}
}

// Resolve returns the entry with the greatest EffectiveDate <= asOf.
// History order is not assumed; sources differ on sort direction.
func (r *PriceResolverImpl) Resolve(subjectID string, asOf time.Time, history []common_models.PriceSnapshot) common_models.PriceSnapshot {
	var best *common_models.PriceSnapshot
	for i := range history {
		snap := &history[i]
		if snap.EffectiveDate.After(asOf) {
			continue
		}
		if best == nil || snap.EffectiveDate.After(best.EffectiveDate) {
			best = snap
		}
	}

	if best == nil {
		if len(history) > 0 {
			r.Logger.Warn("no price effective at as-of date, using defaults",
				zap.String("subject_id", subjectID),
				zap.Time("as_of", asOf))
		}
		return DefaultSnapshot()
	}

	snap := *best
	if snap.Currency == "" {
		snap.Currency = "USD"
	}
	if snap.UnitType == "" {
		snap.UnitType = "each"
	}
	return snap
}
