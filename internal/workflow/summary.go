package workflow

import (
	"context"

	"github.com/garnizeh/reqtrack/pkg/models"
)

// Summarize computes the dashboard aggregate over the caller's visible
// requirements. It is a pure read recomputed on every call; issues counts
// remark rows of type issue, not requirements containing one.
func (e *Engine) Summarize(ctx context.Context, caller *models.User) (*models.Summary, error) {
	visible, err := e.ListRequirements(ctx, caller)
	if err != nil {
		return nil, err
	}

	summary := &models.Summary{TotalRequirements: int64(len(visible))}

	ids := make([]int64, 0, len(visible))
	for _, req := range visible {
		ids = append(ids, req.ID)
		switch req.Status {
		case models.StatusClosed:
			summary.Completed++
		case models.StatusOpen:
			summary.Pending++
		}
	}

	if len(ids) == 0 {
		return summary, nil
	}

	issues, err := e.remarks.CountIssues(ctx, ids)
	if err != nil {
		return nil, storeErr(err)
	}
	summary.Issues = issues

	total, err := e.submissions.TotalSubmissions(ctx, ids)
	if err != nil {
		return nil, storeErr(err)
	}
	summary.TeamPerformance.TotalSubmissions = total

	return summary, nil
}
