package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/reqtrack/pkg/models"
)

const requirementColumns = `id, client_domain, assigned_skill, ecms_id, required_experience, required_location, assigned_budget, openings, status, recruiter_name, team_lead_remarks, profiles_submitted, assignee_id, created_by, created`

func (r *SQLiteRepo) CreateRequirement(ctx context.Context, req *models.Requirement) (int64, error) {
	if req == nil {
		return 0, fmt.Errorf("requirement is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO requirements (client_domain, assigned_skill, ecms_id, required_experience, required_location, assigned_budget, openings, status, recruiter_name, team_lead_remarks, profiles_submitted, created_by, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		req.ClientDomain, req.AssignedSkill, req.EcmsID, req.RequiredExperience, req.RequiredLocation,
		req.AssignedBudget, req.Openings, req.Status, req.RecruiterName, req.TeamLeadRemarks, req.CreatedBy, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetRequirement(ctx context.Context, id int64) (*models.Requirement, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+requirementColumns+` FROM requirements WHERE id = ?`, id)

	var req models.Requirement
	var recruiter, remarks sql.NullString
	var assignee sql.NullInt64
	err := row.Scan(&req.ID, &req.ClientDomain, &req.AssignedSkill, &req.EcmsID, &req.RequiredExperience,
		&req.RequiredLocation, &req.AssignedBudget, &req.Openings, &req.Status, &recruiter, &remarks,
		&req.ProfilesSubmitted, &assignee, &req.CreatedBy, &req.Created)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if recruiter.Valid {
		req.RecruiterName = &recruiter.String
	}
	if remarks.Valid {
		req.TeamLeadRemarks = &remarks.String
	}
	if assignee.Valid {
		req.AssigneeID = &assignee.Int64
	}

	return &req, nil
}

func (r *SQLiteRepo) ListRequirements(ctx context.Context) ([]models.Requirement, error) {
	return r.queryRequirements(ctx, `SELECT `+requirementColumns+` FROM requirements ORDER BY id DESC`)
}

func (r *SQLiteRepo) ListTeamRequirements(ctx context.Context, leadID int64) ([]models.Requirement, error) {
	return r.queryRequirements(ctx,
		`SELECT `+requirementColumns+` FROM requirements
		 WHERE created_by = ? OR created_by IN (SELECT id FROM users WHERE lead_id = ?)
		 ORDER BY id DESC`, leadID, leadID)
}

func (r *SQLiteRepo) ListEmployeeRequirements(ctx context.Context, employeeID int64) ([]models.Requirement, error) {
	return r.queryRequirements(ctx,
		`SELECT `+requirementColumns+` FROM requirements
		 WHERE assignee_id = ? OR status = ?
		 ORDER BY id DESC`, employeeID, models.StatusOpen)
}

func (r *SQLiteRepo) queryRequirements(ctx context.Context, query string, args ...any) ([]models.Requirement, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Requirement
	for rows.Next() {
		var req models.Requirement
		var recruiter, remarks sql.NullString
		var assignee sql.NullInt64
		if err := rows.Scan(&req.ID, &req.ClientDomain, &req.AssignedSkill, &req.EcmsID, &req.RequiredExperience,
			&req.RequiredLocation, &req.AssignedBudget, &req.Openings, &req.Status, &recruiter, &remarks,
			&req.ProfilesSubmitted, &assignee, &req.CreatedBy, &req.Created); err != nil {
			return nil, err
		}
		if recruiter.Valid {
			req.RecruiterName = &recruiter.String
		}
		if remarks.Valid {
			req.TeamLeadRemarks = &remarks.String
		}
		if assignee.Valid {
			req.AssigneeID = &assignee.Int64
		}
		out = append(out, req)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.conn.Exec(ctx, `UPDATE requirements SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("requirement %d not found", id)
	}

	return nil
}
