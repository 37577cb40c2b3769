package workflow

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/garnizeh/reqtrack/pkg/models"
	"github.com/garnizeh/reqtrack/pkg/repository"
)

// Engine is the sole entry point for state-changing operations. Every
// operation authorizes the caller against the matrix in authz.go, checks
// existence and lifecycle state, and only then writes; a failed check leaves
// every store untouched.
type Engine struct {
	users       repository.UserRepo
	reqs        repository.RequirementRepo
	remarks     repository.RemarkRepo
	submissions repository.SubmissionRepo
	assignments repository.AssignmentRepo
	logger      *slog.Logger
}

func New(
	users repository.UserRepo,
	reqs repository.RequirementRepo,
	remarks repository.RemarkRepo,
	submissions repository.SubmissionRepo,
	assignments repository.AssignmentRepo,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		users:       users,
		reqs:        reqs,
		remarks:     remarks,
		submissions: submissions,
		assignments: assignments,
		logger:      logger,
	}
}

// storeErr translates repository failures into engine error kinds.
func storeErr(err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return conflictErr("already exists")
	}
	return unavailableErr(err)
}

type CreateRequirementInput struct {
	ClientDomain       string  `json:"client_domain"`
	AssignedSkill      string  `json:"assigned_skill"`
	EcmsID             string  `json:"ecms_id"`
	RequiredExperience string  `json:"required_experience"`
	RequiredLocation   string  `json:"required_location"`
	AssignedBudget     string  `json:"assigned_budget"`
	Openings           int     `json:"openings"`
	RecruiterName      *string `json:"recruiter_name,omitempty"`
	TeamLeadRemarks    *string `json:"team_lead_remarks,omitempty"`
}

// CreateRequirement opens a new requirement on behalf of a lead or
// superadmin. New requirements always start Open with a zero counter.
func (e *Engine) CreateRequirement(ctx context.Context, caller *models.User, in CreateRequirementInput) (*models.Requirement, error) {
	if err := authorize(caller, ActionCreateRequirement); err != nil {
		return nil, err
	}

	var bad []string
	required := []struct {
		name  string
		value string
	}{
		{"client_domain", in.ClientDomain},
		{"assigned_skill", in.AssignedSkill},
		{"ecms_id", in.EcmsID},
		{"required_experience", in.RequiredExperience},
		{"required_location", in.RequiredLocation},
		{"assigned_budget", in.AssignedBudget},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			bad = append(bad, f.name)
		}
	}
	if in.Openings < 1 {
		bad = append(bad, "openings")
	}
	if len(bad) > 0 {
		return nil, validationErr(bad...)
	}

	req := &models.Requirement{
		ClientDomain:       strings.TrimSpace(in.ClientDomain),
		AssignedSkill:      strings.TrimSpace(in.AssignedSkill),
		EcmsID:             strings.TrimSpace(in.EcmsID),
		RequiredExperience: strings.TrimSpace(in.RequiredExperience),
		RequiredLocation:   strings.TrimSpace(in.RequiredLocation),
		AssignedBudget:     strings.TrimSpace(in.AssignedBudget),
		Openings:           in.Openings,
		Status:             models.StatusOpen,
		RecruiterName:      in.RecruiterName,
		TeamLeadRemarks:    in.TeamLeadRemarks,
		CreatedBy:          caller.ID,
	}

	id, err := e.reqs.CreateRequirement(ctx, req)
	if err != nil {
		return nil, storeErr(err)
	}
	req.ID = id

	return req, nil
}

// ListRequirements returns the requirements visible to the caller:
// superadmin sees all, a lead its own and its team's, an employee the ones
// assigned to it plus every Open one.
func (e *Engine) ListRequirements(ctx context.Context, caller *models.User) ([]models.Requirement, error) {
	if caller == nil {
		return nil, unauthorizedErr("missing caller identity")
	}

	var (
		rows []models.Requirement
		err  error
	)
	switch caller.Role {
	case models.RoleSuperadmin:
		rows, err = e.reqs.ListRequirements(ctx)
	case models.RoleLead:
		rows, err = e.reqs.ListTeamRequirements(ctx, caller.ID)
	case models.RoleEmployee:
		rows, err = e.reqs.ListEmployeeRequirements(ctx, caller.ID)
	default:
		return nil, forbiddenErr("unknown role")
	}
	if err != nil {
		return nil, storeErr(err)
	}
	if rows == nil {
		rows = []models.Requirement{}
	}

	return rows, nil
}

// getRequirement loads a requirement or fails with NotFound.
func (e *Engine) getRequirement(ctx context.Context, id int64) (*models.Requirement, error) {
	req, err := e.reqs.GetRequirement(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if req == nil {
		return nil, notFoundErr("requirement not found")
	}
	return req, nil
}

// canManage reports whether caller may close, reopen or assign the
// requirement: superadmins manage everything, a lead only requirements
// created by itself or by a user reporting to it.
func (e *Engine) canManage(ctx context.Context, caller *models.User, req *models.Requirement) (bool, error) {
	if caller.Role == models.RoleSuperadmin {
		return true, nil
	}
	if req.CreatedBy == caller.ID {
		return true, nil
	}

	creator, err := e.users.GetUserByID(ctx, req.CreatedBy)
	if err != nil {
		return false, storeErr(err)
	}

	return creator != nil && creator.LeadID != nil && *creator.LeadID == caller.ID, nil
}

// ToggleStatus moves a requirement between Open and Closed. Setting the
// current status again is not an error; toggling twice restores the
// original status and never touches the submission counter.
func (e *Engine) ToggleStatus(ctx context.Context, caller *models.User, reqID int64, status string) (*models.Requirement, error) {
	if err := authorize(caller, ActionToggleStatus); err != nil {
		return nil, err
	}
	if status != models.StatusOpen && status != models.StatusClosed {
		return nil, validationErr("status")
	}

	req, err := e.getRequirement(ctx, reqID)
	if err != nil {
		return nil, err
	}

	ok, err := e.canManage(ctx, caller, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, forbiddenErr("requirement belongs to another team")
	}

	if err := e.reqs.UpdateStatus(ctx, reqID, status); err != nil {
		return nil, storeErr(err)
	}
	req.Status = status

	return req, nil
}

// Assign designates the employee working the requirement, overwriting any
// previous assignee (last writer wins).
func (e *Engine) Assign(ctx context.Context, caller *models.User, reqID, employeeID int64) (*models.Requirement, error) {
	if err := authorize(caller, ActionAssign); err != nil {
		return nil, err
	}

	req, err := e.getRequirement(ctx, reqID)
	if err != nil {
		return nil, err
	}

	ok, err := e.canManage(ctx, caller, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, forbiddenErr("requirement belongs to another team")
	}

	// Never trust a client-supplied id: the target must exist and be an
	// employee.
	employee, err := e.users.GetUserByID(ctx, employeeID)
	if err != nil {
		return nil, storeErr(err)
	}
	if employee == nil || employee.Role != models.RoleEmployee {
		return nil, validationErr("employee_id")
	}

	a := &models.Assignment{RequirementID: reqID, EmployeeID: employeeID, AssignedBy: caller.ID}
	if err := e.assignments.AssignEmployee(ctx, a, employee.Name); err != nil {
		return nil, storeErr(err)
	}

	req.AssigneeID = &employee.ID
	req.RecruiterName = &employee.Name

	return req, nil
}

// SubmitProfile records count candidate profiles submitted by an employee
// against an Open requirement. The submission row and the counter increment
// commit atomically; filling every opening never auto-closes the
// requirement.
func (e *Engine) SubmitProfile(ctx context.Context, caller *models.User, reqID int64, count int64) (*models.Submission, error) {
	if err := authorize(caller, ActionSubmitProfile); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, validationErr("count")
	}

	req, err := e.getRequirement(ctx, reqID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusOpen {
		return nil, invalidStateErr("requirement is closed")
	}

	sub := &models.Submission{RequirementID: reqID, SubmittedBy: caller.ID, Count: count}
	id, err := e.submissions.SubmitProfile(ctx, sub)
	if err != nil {
		// The status is re-checked inside the store transaction; a close
		// racing this submit surfaces here.
		if errors.Is(err, repository.ErrRequirementClosed) {
			return nil, invalidStateErr("requirement is closed")
		}
		return nil, storeErr(err)
	}
	sub.ID = id

	return sub, nil
}
