package logger

import (
	"context"
	"fmt"
	"time"

	"go-assetreport/internal/config"
	"go-assetreport/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// WarningEntry holds the data passed from the zap hook to the worker.
type WarningEntry struct {
	Level   zapcore.Level
	Message string
	RunID   int64
	Source  string
	Caller  string
}

type warningRecord struct {
	Message   string    `bson:"message"`
	Level     string    `bson:"level"`
	RunID     int64     `bson:"run_id,omitempty"`
	Source    string    `bson:"source,omitempty"`
	Caller    string    `bson:"caller,omitempty"`
	AppID     string    `bson:"app_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// WarningSink writes run warnings to Mongo asynchronously so logging never
// blocks the request path.
type WarningSink struct {
	db      *mongo.Database
	entries chan WarningEntry
	appID   string
}

func NewWarningSink(mongodb *database.MongodbDB, cfg *config.Config) *WarningSink {
	sink := &WarningSink{
		db:      mongodb.DB,
		entries: make(chan WarningEntry, 1000),
		appID:   cfg.AppId,
	}

	go sink.process()

	return sink
}

// Add is called from the zap core.
func (s *WarningSink) Add(entry WarningEntry) {
	select {
	case s.entries <- entry:
	default:
		// Channel full: drop instead of blocking the caller
		fmt.Println("Warning sink full! Dropping:", entry.Message)
	}
}

func (s *WarningSink) process() {
	for entry := range s.entries {
		record := warningRecord{
			Message:   entry.Message,
			Level:     entry.Level.String(),
			RunID:     entry.RunID,
			Source:    entry.Source,
			Caller:    entry.Caller,
			AppID:     s.appID,
			CreatedAt: time.Now().UTC(),
		}

		// Insert errors are swallowed to keep the app running
		s.db.Collection("run_warnings").InsertOne(context.Background(), record)
	}
}
