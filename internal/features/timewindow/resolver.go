package timewindow

import "time"

// Kind is a symbolic date range keyword.
type Kind string

const (
	KindCurrentMonth Kind = "current_month"
	KindLastMonth    Kind = "last_month"
	KindLastWeek     Kind = "last_week"
	KindLast3Months  Kind = "last_3_months"
	KindAllTime      Kind = "all_time"
	KindCustom       Kind = "custom"
)

// allTimeFloor is the epoch floor for "all_time" ranges.
var allTimeFloor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateRange is a concrete interval. End is inclusive through end of day for
// calendar-aligned kinds.
type DateRange struct {
	Kind  Kind      `json:"kind" bson:"kind"`
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Resolve maps a symbolic kind (plus optional custom bounds) onto concrete
// dates relative to now. Pure function: no clock reads, no I/O. An unknown
// kind and a custom range with a missing bound both fall back to last_month.
func Resolve(kind Kind, now time.Time, customStart, customEnd *time.Time) DateRange {
	switch kind {
	case KindCurrentMonth:
		return DateRange{
			Kind:  kind,
			Start: startOfMonth(now),
			End:   now,
		}
	case KindLastWeek:
		return DateRange{
			Kind:  kind,
			Start: now.AddDate(0, 0, -7),
			End:   now,
		}
	case KindLast3Months:
		return DateRange{
			Kind:  kind,
			Start: startOfMonth(now).AddDate(0, -3, 0),
			End:   now,
		}
	case KindAllTime:
		return DateRange{
			Kind:  kind,
			Start: allTimeFloor,
			End:   now,
		}
	case KindCustom:
		if customStart == nil || customEnd == nil {
			return lastMonth(KindCustom, now)
		}
		end := endOfDay(*customEnd)
		if customStart.After(end) {
			// reversed bounds are as invalid as missing ones; Start <= End
			// must hold on every returned range
			return lastMonth(KindCustom, now)
		}
		return DateRange{
			Kind:  kind,
			Start: *customStart,
			End:   end,
		}
	case KindLastMonth:
		return lastMonth(kind, now)
	default:
		return lastMonth(KindLastMonth, now)
	}
}

// lastMonth spans the whole prior calendar month, through end of its last day.
func lastMonth(kind Kind, now time.Time) DateRange {
	firstOfThis := startOfMonth(now)
	start := firstOfThis.AddDate(0, -1, 0)
	end := firstOfThis.Add(-time.Nanosecond)
	return DateRange{Kind: kind, Start: start, End: end}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
