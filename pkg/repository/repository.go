package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/reqtrack/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookup methods return (nil, nil) when the entity does not exist; storage
// failures are returned as errors.

// Storage-level sentinel errors surfaced to the workflow layer.
var (
	// ErrConflict signals a uniqueness violation (duplicate user email).
	ErrConflict = errors.New("repository: conflict")
	// ErrRequirementClosed is returned by SubmitProfile when the target
	// requirement is not Open; the transaction is rolled back.
	ErrRequirementClosed = errors.New("repository: requirement closed")
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type RequirementRepo interface {
	CreateRequirement(ctx context.Context, r *models.Requirement) (int64, error)
	GetRequirement(ctx context.Context, id int64) (*models.Requirement, error)
	// ListRequirements returns every requirement, newest first by id.
	ListRequirements(ctx context.Context) ([]models.Requirement, error)
	// ListTeamRequirements returns requirements created by the lead or by
	// any user reporting to the lead.
	ListTeamRequirements(ctx context.Context, leadID int64) ([]models.Requirement, error)
	// ListEmployeeRequirements returns requirements assigned to the
	// employee plus every requirement still Open.
	ListEmployeeRequirements(ctx context.Context, employeeID int64) ([]models.Requirement, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type RemarkRepo interface {
	CreateRemark(ctx context.Context, r *models.Remark) (int64, error)
	// ListRemarks returns the requirement's remarks ordered by creation
	// time ascending, ties broken by id.
	ListRemarks(ctx context.Context, requirementID int64) ([]models.Remark, error)
	// CountIssues counts remark rows of type issue across the given
	// requirements (row count, not requirement count).
	CountIssues(ctx context.Context, requirementIDs []int64) (int64, error)
}

type SubmissionRepo interface {
	// SubmitProfile appends a submission row and increments the owning
	// requirement's profiles_submitted by s.Count in a single transaction.
	// Returns ErrRequirementClosed when the requirement is not Open.
	SubmitProfile(ctx context.Context, s *models.Submission) (int64, error)
	ListSubmissions(ctx context.Context, requirementID int64) ([]models.Submission, error)
	// TotalSubmissions sums submission counts across the given requirements.
	TotalSubmissions(ctx context.Context, requirementIDs []int64) (int64, error)
}

type AssignmentRepo interface {
	// AssignEmployee overwrites the requirement's assignee and recruiter
	// name and upserts the single ledger row, in one transaction.
	AssignEmployee(ctx context.Context, a *models.Assignment, recruiterName string) error
	GetAssignment(ctx context.Context, requirementID int64) (*models.Assignment, error)
}
