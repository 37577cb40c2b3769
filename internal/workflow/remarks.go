package workflow

import (
	"context"
	"strings"

	"github.com/garnizeh/reqtrack/pkg/models"
)

// AddRemark appends an annotation to a requirement's log and returns the
// full ordered log. The log is append-only; prior entries are never edited
// or reordered.
func (e *Engine) AddRemark(ctx context.Context, caller *models.User, reqID int64, text, remarkType string) ([]models.Remark, error) {
	if err := authorize(caller, ActionAddRemark); err != nil {
		return nil, err
	}

	var bad []string
	if strings.TrimSpace(text) == "" {
		bad = append(bad, "text")
	}
	if remarkType != models.RemarkTypeRemark && remarkType != models.RemarkTypeIssue {
		bad = append(bad, "remark_type")
	}
	if len(bad) > 0 {
		return nil, validationErr(bad...)
	}

	if _, err := e.getRequirement(ctx, reqID); err != nil {
		return nil, err
	}

	remark := &models.Remark{
		RequirementID: reqID,
		Text:          strings.TrimSpace(text),
		RemarkType:    remarkType,
		AuthorID:      caller.ID,
	}
	if _, err := e.remarks.CreateRemark(ctx, remark); err != nil {
		return nil, storeErr(err)
	}

	return e.ListRemarks(ctx, caller, reqID)
}

// ListRemarks returns a requirement's remarks ordered by creation time
// ascending, ties broken by id.
func (e *Engine) ListRemarks(ctx context.Context, caller *models.User, reqID int64) ([]models.Remark, error) {
	if caller == nil {
		return nil, unauthorizedErr("missing caller identity")
	}

	if _, err := e.getRequirement(ctx, reqID); err != nil {
		return nil, err
	}

	rows, err := e.remarks.ListRemarks(ctx, reqID)
	if err != nil {
		return nil, storeErr(err)
	}
	if rows == nil {
		rows = []models.Remark{}
	}

	return rows, nil
}
