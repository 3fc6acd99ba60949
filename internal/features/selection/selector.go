package selection

import (
	"sort"
	"strings"

	common_models "go-assetreport/internal/common/models"
	"go-assetreport/internal/config"
	"go-assetreport/internal/features/timewindow"
)

const formFieldPrefix = "form_field."

// Policy holds the completeness heuristic knobs. The historical layout used
// five form fields and a field_13 total; both are configurable.
type Policy struct {
	MinCompleteFields int
	TotalFieldAlias   string
	TotalFieldKeys    []string
}

func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		MinCompleteFields: cfg.CompleteMinFields,
		TotalFieldAlias:   cfg.TotalFieldAlias,
		TotalFieldKeys:    cfg.TotalFieldKeys,
	}
}

// SubmissionSelector picks the record(s) that represent a subject for the
// active view mode.
type SubmissionSelector interface {
	Select(subject common_models.Subject, mode common_models.ViewMode, window timewindow.DateRange) []common_models.Submission
}

type SubmissionSelectorImpl struct {
	Policy Policy
}

func NewSubmissionSelector(policy Policy) SubmissionSelector {
	return &SubmissionSelectorImpl{Policy: policy}
}

// Select returns the representing submissions, newest first. For "latest"
// the result has at most one entry; an empty result still yields a row (with
// empty fields) in that mode. "comparison" defers to "history" semantics;
// no distinct diffing algorithm exists.
func (s *SubmissionSelectorImpl) Select(subject common_models.Subject, mode common_models.ViewMode, window timewindow.DateRange) []common_models.Submission {
	subs := newestFirst(subject.Submissions)

	switch mode {
	case common_models.ViewModeHistory, common_models.ViewModeComparison:
		var matched []common_models.Submission
		for _, sub := range subs {
			if window.Contains(sub.CreatedAt) {
				matched = append(matched, sub)
			}
		}
		return matched
	default: // latest
		for _, sub := range subs {
			if s.isComplete(sub) {
				return []common_models.Submission{sub}
			}
		}
		if len(subs) > 0 {
			return subs[:1]
		}
		return nil
	}
}

// isComplete: at least MinCompleteFields non-empty form-prefixed fields AND
// a present, non-empty designated total field.
func (s *SubmissionSelectorImpl) isComplete(sub common_models.Submission) bool {
	formFields := 0
	hasTotal := false

	for key, val := range sub.Data {
		if common_models.RenderValue(val) == "" {
			continue
		}
		if strings.HasPrefix(key, formFieldPrefix) {
			formFields++
		}
		if fieldNameMatches(key, s.Policy.TotalFieldAlias) {
			hasTotal = true
		}
	}

	return formFields >= s.Policy.MinCompleteFields && hasTotal
}

func newestFirst(subs []common_models.Submission) []common_models.Submission {
	out := make([]common_models.Submission, len(subs))
	copy(out, subs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// fieldNameMatches compares the bare field name, ignoring any namespace
// segments (form_field.<formId>.<fieldId> matches on <fieldId>).
func fieldNameMatches(key, name string) bool {
	if name == "" {
		return false
	}
	bare := key
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		bare = key[idx+1:]
	}
	return strings.EqualFold(bare, name)
}
