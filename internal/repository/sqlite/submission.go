package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/reqtrack/pkg/models"
	"github.com/garnizeh/reqtrack/pkg/repository"
)

// SubmitProfile appends the submission row and bumps the requirement's
// counter in one transaction. The status is re-checked inside the
// transaction so a racing close cannot slip a submission into a Closed
// requirement, and concurrent submits serialize on the relative UPDATE.
func (r *SQLiteRepo) SubmitProfile(ctx context.Context, s *models.Submission) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("submission is nil")
	}

	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var status string
		row := tx.QueryRowContext(ctx, `SELECT status FROM requirements WHERE id = ?`, s.RequirementID)
		if err := row.Scan(&status); err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("requirement %d not found", s.RequirementID)
			}
			return err
		}
		if status != models.StatusOpen {
			return repository.ErrRequirementClosed
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO submissions (requirement_id, submitted_by, count, created) VALUES (?, ?, ?, ?)`,
			s.RequirementID, s.SubmittedBy, s.Count, now())
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE requirements SET profiles_submitted = profiles_submitted + ? WHERE id = ?`,
			s.Count, s.RequirementID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *SQLiteRepo) ListSubmissions(ctx context.Context, requirementID int64) ([]models.Submission, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, requirement_id, submitted_by, count, created FROM submissions WHERE requirement_id = ? ORDER BY id`,
		requirementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(&s.ID, &s.RequirementID, &s.SubmittedBy, &s.Count, &s.Created); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) TotalSubmissions(ctx context.Context, requirementIDs []int64) (int64, error) {
	if len(requirementIDs) == 0 {
		return 0, nil
	}

	query := `SELECT COALESCE(SUM(count), 0) FROM submissions WHERE requirement_id IN (` + placeholders(len(requirementIDs)) + `)`

	var total int64
	if err := r.conn.QueryRow(ctx, query, int64Args(requirementIDs)...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}
