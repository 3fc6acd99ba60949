package logger

import (
	"go.uber.org/zap/zapcore"
)

// WarningCore is a zap Core that tees WARN and above into the warning sink
// while still writing every entry to the wrapped core.
type WarningCore struct {
	zapcore.Core
	sink *WarningSink
}

func NewWarningCore(baseCore zapcore.Core, sink *WarningSink) zapcore.Core {
	return &WarningCore{
		Core: baseCore,
		sink: sink,
	}
}

// Write is called for every log entry
func (c *WarningCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= zapcore.WarnLevel {
		var runID int64
		var source string

		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(enc)
			if f.Key == "run_id" {
				runID = f.Integer
			}
			if f.Key == "source" {
				source = f.String
			}
		}

		c.sink.Add(WarningEntry{
			Level:   entry.Level,
			Message: entry.Message,
			RunID:   runID,
			Source:  source,
			Caller:  entry.Caller.Function,
		})
	}

	return c.Core.Write(entry, fields)
}

func (c *WarningCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
