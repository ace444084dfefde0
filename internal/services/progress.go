package services

import (
	"math"

	"github.com/audithub/audithub/internal/models"
)

// ComplianceBreakdown covers the applicable criteria only: rows marked
// NOT_APPLICABLE are excluded from its denominator.
type ComplianceBreakdown struct {
	Completed          float64 `json:"completed"`
	PartiallyCompleted float64 `json:"partially_completed"`
}

// Progress summarizes the compliance state of one project audit. All
// percentages are rounded to 2 decimals; an audit without criteria reports
// zero across the board.
type Progress struct {
	Total                int                 `json:"total"`
	Handled              int                 `json:"handled"`
	CompletionPercentage float64             `json:"completion_percentage"`
	Breakdown            ComplianceBreakdown `json:"breakdown"`
}

// ComputeProgress walks the criteria once, counting per-status occurrences.
// A criterion counts as handled when its status is anything other than
// NOT_HANDLED_YET, including NOT_APPLICABLE.
func ComputeProgress(criteria []models.ProjectAuditCriterion) Progress {
	counts := make(map[string]int, len(models.CriterionStatuses))
	for _, c := range criteria {
		counts[c.Status]++
	}

	progress := Progress{Total: len(criteria)}
	progress.Handled = progress.Total - counts[models.StatusNotHandledYet]
	progress.CompletionPercentage = percentage(progress.Handled, progress.Total)

	applicable := progress.Total - counts[models.StatusNotApplicable]
	progress.Breakdown = ComplianceBreakdown{
		Completed:          percentage(counts[models.StatusCompliant], applicable),
		PartiallyCompleted: percentage(counts[models.StatusPartiallyCompliant], applicable),
	}

	return progress
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}
