package logger

import (
	"go-assetreport/internal/config"
	"go-assetreport/internal/database"

	"go.uber.org/zap"
)

// NewLogger builds the zap logger and wires the warning sink so WARN+
// entries from report runs end up queryable after the run finishes.
func NewLogger(cfg *config.Config, db *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	sink := NewWarningSink(db, cfg)
	finalCore := NewWarningCore(baseLogger.Core(), sink)

	return zap.New(finalCore, zap.AddCaller()), nil
}
