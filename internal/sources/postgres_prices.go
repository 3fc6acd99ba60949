package sources

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	common_models "go-assetreport/internal/common/models"
	"go-assetreport/internal/config"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// PostgresPriceSource reads immutable price history rows from an external
// postgres table. Optional; a nil source means subjects carry their own
// nested history.
type PostgresPriceSource struct {
	db *sql.DB
}

// NewPriceHistorySource connects to the price database when PRICE_DSN is
// set. Returns a nil interface otherwise so the executor falls back to the
// history nested on each subject.
func NewPriceHistorySource(lc fx.Lifecycle, cfg *config.Config) (PriceHistorySource, error) {
	if cfg.PriceDSN == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", cfg.PriceDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open price database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.PingContext(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return &PostgresPriceSource{db: db}, nil
}

func (s *PostgresPriceSource) History(ctx context.Context, subjectID string) ([]common_models.PriceSnapshot, error) {
	const query = `
		SELECT price, currency, unit_type, effective_date
		FROM price_history
		WHERE subject_id = $1
		ORDER BY effective_date DESC`

	rows, err := s.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history: %w", err)
	}
	defer rows.Close()

	var history []common_models.PriceSnapshot
	for rows.Next() {
		var (
			priceStr      string
			currency      string
			unitType      string
			effectiveDate time.Time
		)
		if err := rows.Scan(&priceStr, &currency, &unitType, &effectiveDate); err != nil {
			return nil, err
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("bad price value %q for subject %s: %w", priceStr, subjectID, err)
		}

		history = append(history, common_models.PriceSnapshot{
			Price:         price,
			Currency:      currency,
			UnitType:      unitType,
			EffectiveDate: effectiveDate,
		})
	}

	return history, rows.Err()
}
