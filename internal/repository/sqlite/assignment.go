package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/reqtrack/pkg/models"
)

// AssignEmployee overwrites the requirement's assignee columns and the
// single ledger row for the requirement, in one transaction. Last writer
// wins; no assignment history is kept.
func (r *SQLiteRepo) AssignEmployee(ctx context.Context, a *models.Assignment, recruiterName string) error {
	if a == nil {
		return fmt.Errorf("assignment is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE requirements SET assignee_id = ?, recruiter_name = ? WHERE id = ?`,
			a.EmployeeID, recruiterName, a.RequirementID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("requirement %d not found", a.RequirementID)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO assignments (requirement_id, employee_id, assigned_by, assigned) VALUES (?, ?, ?, ?)
			 ON CONFLICT(requirement_id) DO UPDATE SET employee_id=excluded.employee_id, assigned_by=excluded.assigned_by, assigned=excluded.assigned`,
			a.RequirementID, a.EmployeeID, a.AssignedBy, now())
		return err
	})
}

func (r *SQLiteRepo) GetAssignment(ctx context.Context, requirementID int64) (*models.Assignment, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT requirement_id, employee_id, assigned_by, assigned FROM assignments WHERE requirement_id = ?`,
		requirementID)

	var a models.Assignment
	if err := row.Scan(&a.RequirementID, &a.EmployeeID, &a.AssignedBy, &a.Assigned); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}
