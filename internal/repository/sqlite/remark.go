package sqlite

import (
	"context"
	"fmt"

	"github.com/garnizeh/reqtrack/pkg/models"
)

func (r *SQLiteRepo) CreateRemark(ctx context.Context, remark *models.Remark) (int64, error) {
	if remark == nil {
		return 0, fmt.Errorf("remark is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO remarks (requirement_id, text, remark_type, author_id, created) VALUES (?, ?, ?, ?, ?)`,
		remark.RequirementID, remark.Text, remark.RemarkType, remark.AuthorID, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListRemarks(ctx context.Context, requirementID int64) ([]models.Remark, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, requirement_id, text, remark_type, author_id, created FROM remarks WHERE requirement_id = ? ORDER BY created, id`,
		requirementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Remark
	for rows.Next() {
		var m models.Remark
		if err := rows.Scan(&m.ID, &m.RequirementID, &m.Text, &m.RemarkType, &m.AuthorID, &m.Created); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountIssues(ctx context.Context, requirementIDs []int64) (int64, error) {
	if len(requirementIDs) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(1) FROM remarks WHERE remark_type = ? AND requirement_id IN (` + placeholders(len(requirementIDs)) + `)`
	args := append([]any{models.RemarkTypeIssue}, int64Args(requirementIDs)...)

	var count int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
