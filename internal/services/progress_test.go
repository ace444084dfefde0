package services

import (
	"testing"

	"github.com/audithub/audithub/internal/models"
)

func criteriaWithStatuses(statuses ...string) []models.ProjectAuditCriterion {
	criteria := make([]models.ProjectAuditCriterion, len(statuses))
	for i, s := range statuses {
		criteria[i] = models.ProjectAuditCriterion{Status: s}
	}
	return criteria
}

func TestComputeProgress_Empty(t *testing.T) {
	progress := ComputeProgress(nil)

	if progress.Total != 0 {
		t.Errorf("Total = %d, expected 0", progress.Total)
	}
	if progress.Handled != 0 {
		t.Errorf("Handled = %d, expected 0", progress.Handled)
	}
	if progress.CompletionPercentage != 0 {
		t.Errorf("CompletionPercentage = %v, expected 0", progress.CompletionPercentage)
	}
	if progress.Breakdown.Completed != 0 || progress.Breakdown.PartiallyCompleted != 0 {
		t.Errorf("Breakdown = %+v, expected zeroes", progress.Breakdown)
	}
}

func TestComputeProgress_CompletionPercentage(t *testing.T) {
	criteria := criteriaWithStatuses(
		models.StatusCompliant,
		models.StatusNotHandledYet,
		models.StatusNotHandledYet,
		models.StatusNotHandledYet,
	)

	progress := ComputeProgress(criteria)

	if progress.Total != 4 {
		t.Errorf("Total = %d, expected 4", progress.Total)
	}
	if progress.Handled != 1 {
		t.Errorf("Handled = %d, expected 1", progress.Handled)
	}
	if progress.CompletionPercentage != 25.0 {
		t.Errorf("CompletionPercentage = %v, expected 25.0", progress.CompletionPercentage)
	}
}

func TestComputeProgress_NotApplicableCountsAsHandled(t *testing.T) {
	criteria := criteriaWithStatuses(
		models.StatusNotApplicable,
		models.StatusNotHandledYet,
	)

	progress := ComputeProgress(criteria)

	if progress.Handled != 1 {
		t.Errorf("Handled = %d, expected 1", progress.Handled)
	}
	if progress.CompletionPercentage != 50.0 {
		t.Errorf("CompletionPercentage = %v, expected 50.0", progress.CompletionPercentage)
	}
}

func TestComputeProgress_Breakdown(t *testing.T) {
	// 3 applicable criteria; NOT_APPLICABLE is excluded from the denominator
	criteria := criteriaWithStatuses(
		models.StatusCompliant,
		models.StatusCompliant,
		models.StatusNotApplicable,
		models.StatusPartiallyCompliant,
	)

	progress := ComputeProgress(criteria)

	if progress.Breakdown.Completed != 66.67 {
		t.Errorf("Breakdown.Completed = %v, expected 66.67", progress.Breakdown.Completed)
	}
	if progress.Breakdown.PartiallyCompleted != 33.33 {
		t.Errorf("Breakdown.PartiallyCompleted = %v, expected 33.33", progress.Breakdown.PartiallyCompleted)
	}
}

func TestComputeProgress_AllNotApplicable(t *testing.T) {
	criteria := criteriaWithStatuses(
		models.StatusNotApplicable,
		models.StatusNotApplicable,
	)

	progress := ComputeProgress(criteria)

	if progress.CompletionPercentage != 100.0 {
		t.Errorf("CompletionPercentage = %v, expected 100.0", progress.CompletionPercentage)
	}
	if progress.Breakdown.Completed != 0 || progress.Breakdown.PartiallyCompleted != 0 {
		t.Errorf("Breakdown = %+v, expected zeroes for an empty applicable subset", progress.Breakdown)
	}
}

func TestComputeProgress_NotCompliantIsHandledButNotCompleted(t *testing.T) {
	criteria := criteriaWithStatuses(
		models.StatusNotCompliant,
		models.StatusCompliant,
	)

	progress := ComputeProgress(criteria)

	if progress.Handled != 2 {
		t.Errorf("Handled = %d, expected 2", progress.Handled)
	}
	if progress.Breakdown.Completed != 50.0 {
		t.Errorf("Breakdown.Completed = %v, expected 50.0", progress.Breakdown.Completed)
	}
	if progress.Breakdown.PartiallyCompleted != 0 {
		t.Errorf("Breakdown.PartiallyCompleted = %v, expected 0", progress.Breakdown.PartiallyCompleted)
	}
}
