package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/garnizeh/reqtrack/pkg/models"
	"github.com/garnizeh/reqtrack/pkg/repository"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO users (name, email, role, lead_id, password_hash, created) VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, string(u.Role), u.LeadID, u.PasswordHash, now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return 0, repository.ErrConflict
		}
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, lead_id, password_hash, created FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, lead_id, password_hash, created FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	var leadID sql.NullInt64
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &leadID, &u.PasswordHash, &u.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	u.Role = models.Role(role)
	if leadID.Valid {
		u.LeadID = &leadID.Int64
	}

	return &u, nil
}

func (r *SQLiteRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, email, role, lead_id, password_hash, created FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		var role string
		var leadID sql.NullInt64
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &leadID, &u.PasswordHash, &u.Created); err != nil {
			return nil, err
		}
		u.Role = models.Role(role)
		if leadID.Valid {
			u.LeadID = &leadID.Int64
		}
		out = append(out, u)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) DeleteUser(ctx context.Context, id int64) error {
	// No cascade: reportees keep their lead_id and stay retrievable.
	_, err := r.conn.Exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}
