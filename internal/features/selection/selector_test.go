package selection

import (
	"fmt"
	"testing"
	"time"

	common_models "go-assetreport/internal/common/models"
	"go-assetreport/internal/features/timewindow"
)

func testPolicy() Policy {
	return Policy{
		MinCompleteFields: 5,
		TotalFieldAlias:   "field_13",
		TotalFieldKeys:    []string{"total", "ending", "balance"},
	}
}

func submissionWithFormFields(createdAt time.Time, nonEmpty int, withTotal bool) common_models.Submission {
	data := map[string]interface{}{}
	for i := 0; i < nonEmpty; i++ {
		data[fmt.Sprintf("form_field.f1.field_%d", i)] = fmt.Sprintf("v%d", i)
	}
	if withTotal {
		data["form_field.f1.field_13"] = "500"
	}
	return common_models.Submission{CreatedAt: createdAt, Data: data}
}

func TestSelectLatestPrefersComplete(t *testing.T) {
	// Three submissions with 3, 7 and 2 non-empty form fields; only the
	// 7-field one carries a populated total. It must win even though it is
	// not the newest.
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	subject := common_models.Subject{
		ID: "pump-a",
		Submissions: []common_models.Submission{
			submissionWithFormFields(base.AddDate(0, 0, 10), 2, false), // newest
			submissionWithFormFields(base.AddDate(0, 0, 5), 7, true),
			submissionWithFormFields(base, 3, false),
		},
	}

	selector := NewSubmissionSelector(testPolicy())
	got := selector.Select(subject, common_models.ViewModeLatest, timewindow.DateRange{})

	if len(got) != 1 {
		t.Fatalf("got %d submissions, want 1", len(got))
	}
	if !got[0].CreatedAt.Equal(base.AddDate(0, 0, 5)) {
		t.Errorf("selected %v, want the complete 7-field submission", got[0].CreatedAt)
	}
}

func TestSelectLatestFallsBackToNewest(t *testing.T) {
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	subject := common_models.Subject{
		Submissions: []common_models.Submission{
			submissionWithFormFields(base, 2, false),
			submissionWithFormFields(base.AddDate(0, 0, 3), 1, false),
		},
	}

	selector := NewSubmissionSelector(testPolicy())
	got := selector.Select(subject, common_models.ViewModeLatest, timewindow.DateRange{})

	if len(got) != 1 {
		t.Fatalf("got %d submissions, want 1", len(got))
	}
	if !got[0].CreatedAt.Equal(base.AddDate(0, 0, 3)) {
		t.Errorf("selected %v, want the newest submission", got[0].CreatedAt)
	}
}

func TestSelectLatestNoSubmissions(t *testing.T) {
	selector := NewSubmissionSelector(testPolicy())
	got := selector.Select(common_models.Subject{}, common_models.ViewModeLatest, timewindow.DateRange{})
	if got != nil {
		t.Errorf("got %v, want nil for a subject with no history", got)
	}
}

func TestSelectHistory(t *testing.T) {
	window := timewindow.DateRange{
		Start: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC),
	}

	subject := common_models.Subject{
		Submissions: []common_models.Submission{
			submissionWithFormFields(time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), 1, false),
			submissionWithFormFields(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC), 1, false),
			submissionWithFormFields(time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), 1, false),
			submissionWithFormFields(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 1, false),
		},
	}

	selector := NewSubmissionSelector(testPolicy())

	for _, mode := range []common_models.ViewMode{common_models.ViewModeHistory, common_models.ViewModeComparison} {
		t.Run(string(mode), func(t *testing.T) {
			got := selector.Select(subject, mode, window)
			if len(got) != 2 {
				t.Fatalf("got %d submissions, want 2", len(got))
			}
			if !got[0].CreatedAt.After(got[1].CreatedAt) {
				t.Error("results not newest first")
			}
		})
	}

	t.Run("no matches yields zero rows", func(t *testing.T) {
		empty := timewindow.DateRange{
			Start: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC),
		}
		if got := selector.Select(subject, common_models.ViewModeHistory, empty); len(got) != 0 {
			t.Errorf("got %d submissions, want 0", len(got))
		}
	})
}
