package selection

import (
	"sort"
	"strings"
	"time"

	common_models "go-assetreport/internal/common/models"
	"go-assetreport/internal/features/timewindow"
)

// LastPeriodTotalResolver computes the trailing-period reference value with
// fallback search. Absence is a valid, displayable result; this never errors.
type LastPeriodTotalResolver interface {
	Resolve(subject common_models.Subject, now time.Time) string
}

type LastPeriodTotalResolverImpl struct {
	Policy Policy
}

func NewLastPeriodTotalResolver(policy Policy) LastPeriodTotalResolver {
	return &LastPeriodTotalResolverImpl{Policy: policy}
}

func (r *LastPeriodTotalResolverImpl) Resolve(subject common_models.Subject, now time.Time) string {
	subs := newestFirst(subject.Submissions)
	lastMonth := timewindow.Resolve(timewindow.KindLastMonth, now, nil, nil)

	// Tier 1: a submission from the immediately preceding calendar month.
	for _, sub := range subs {
		if !lastMonth.Contains(sub.CreatedAt) {
			continue
		}
		if val := r.findTotal(sub); val != "" {
			return val
		}
	}

	// Tier 2: newest submission anywhere with a non-empty total-like field.
	for _, sub := range subs {
		if val := r.findTotal(sub); val != "" {
			return val
		}
	}

	return ""
}

// findTotal scans a submission's fields case-insensitively for the
// configured alias, then for a key containing one of the total words. Keys
// are visited in sorted order and the alias outranks keyword matches, so
// the same submission always yields the same value.
func (r *LastPeriodTotalResolverImpl) findTotal(sub common_models.Submission) string {
	keys := make([]string, 0, len(sub.Data))
	for key := range sub.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !fieldNameMatches(key, r.Policy.TotalFieldAlias) {
			continue
		}
		if rendered := common_models.RenderValue(sub.Data[key]); rendered != "" {
			return rendered
		}
	}

	for _, key := range keys {
		lowered := strings.ToLower(key)
		for _, word := range r.Policy.TotalFieldKeys {
			if !strings.Contains(lowered, strings.ToLower(word)) {
				continue
			}
			if rendered := common_models.RenderValue(sub.Data[key]); rendered != "" {
				return rendered
			}
		}
	}
	return ""
}
