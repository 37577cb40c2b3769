package workflow

import (
	"context"
	"strings"

	"github.com/garnizeh/reqtrack/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate resolves credentials to a user. The plaintext password and
// the stored hash never leave this function and are never logged.
func (e *Engine) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, unauthorizedErr("invalid credentials")
	}

	user, err := e.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, unauthorizedErr("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, unauthorizedErr("invalid credentials")
	}

	return user, nil
}

type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	LeadID   *int64      `json:"lead_id,omitempty"`
}

// Register creates a user. Only superadmins may register; accounts are
// never self-registered.
func (e *Engine) Register(ctx context.Context, caller *models.User, in RegisterInput) (*models.User, error) {
	if err := authorize(caller, ActionRegisterUser); err != nil {
		return nil, err
	}

	var bad []string
	if strings.TrimSpace(in.Name) == "" {
		bad = append(bad, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		bad = append(bad, "email")
	}
	if in.Password == "" {
		bad = append(bad, "password")
	}
	if !in.Role.Valid() {
		bad = append(bad, "role")
	}
	if len(bad) > 0 {
		return nil, validationErr(bad...)
	}

	if in.LeadID != nil {
		lead, err := e.users.GetUserByID(ctx, *in.LeadID)
		if err != nil {
			return nil, storeErr(err)
		}
		if lead == nil || lead.Role != models.RoleLead {
			return nil, validationErr("lead_id")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, unavailableErr(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Role:         in.Role,
		LeadID:       in.LeadID,
		PasswordHash: string(hash),
	}
	id, err := e.users.CreateUser(ctx, user)
	if err != nil {
		return nil, storeErr(err)
	}
	user.ID = id

	return user, nil
}

// DeleteUser removes a user. Deleting a lead does not cascade to its
// reportees; their lead_id is left dangling and they stay retrievable.
func (e *Engine) DeleteUser(ctx context.Context, caller *models.User, id int64) error {
	if err := authorize(caller, ActionDeleteUser); err != nil {
		return err
	}

	user, err := e.users.GetUserByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if user == nil {
		return notFoundErr("user not found")
	}

	if err := e.users.DeleteUser(ctx, id); err != nil {
		return storeErr(err)
	}

	return nil
}

func (e *Engine) ListUsers(ctx context.Context, caller *models.User) ([]models.User, error) {
	if err := authorize(caller, ActionListUsers); err != nil {
		return nil, err
	}

	rows, err := e.users.ListUsers(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	if rows == nil {
		rows = []models.User{}
	}

	return rows, nil
}

// GetUser loads a user by id; used by the auth middleware to resolve a
// bearer token to its identity.
func (e *Engine) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := e.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, notFoundErr("user not found")
	}
	return user, nil
}
