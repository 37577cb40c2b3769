package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Role is the single role carried by every user. Roles are immutable after
// registration; there is no role-change operation.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleLead       Role = "lead"
	RoleEmployee   Role = "employee"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleLead, RoleEmployee:
		return true
	}
	return false
}

// Requirement lifecycle status. Open and Closed are the only states.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Role         Role   `json:"role" db:"role"`
	LeadID       *int64 `json:"lead_id,omitempty" db:"lead_id"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

type Requirement struct {
	ID                 int64   `json:"id" db:"id"`
	ClientDomain       string  `json:"client_domain" db:"client_domain"`
	AssignedSkill      string  `json:"assigned_skill" db:"assigned_skill"`
	EcmsID             string  `json:"ecms_id" db:"ecms_id"`
	RequiredExperience string  `json:"required_experience" db:"required_experience"`
	RequiredLocation   string  `json:"required_location" db:"required_location"`
	AssignedBudget     string  `json:"assigned_budget" db:"assigned_budget"`
	Openings           int     `json:"openings" db:"openings"`
	Status             string  `json:"status" db:"status"`
	RecruiterName      *string `json:"recruiter_name,omitempty" db:"recruiter_name"`
	TeamLeadRemarks    *string `json:"team_lead_remarks,omitempty" db:"team_lead_remarks"`
	ProfilesSubmitted  int64   `json:"profiles_submitted" db:"profiles_submitted"`
	AssigneeID         *int64  `json:"assignee_id,omitempty" db:"assignee_id"`
	CreatedBy          int64   `json:"created_by" db:"created_by"`
	Created            int64   `json:"created" db:"created"`
}

// Remark annotation kinds. Issues are counted separately on the dashboard.
const (
	RemarkTypeRemark = "remark"
	RemarkTypeIssue  = "issue"
)

type Remark struct {
	ID            int64  `json:"id" db:"id"`
	RequirementID int64  `json:"requirement_id" db:"requirement_id"`
	Text          string `json:"text" db:"text"`
	RemarkType    string `json:"remark_type" db:"remark_type"`
	AuthorID      int64  `json:"author_id" db:"author_id"`
	Created       int64  `json:"created" db:"created"`
}

type Submission struct {
	ID            int64 `json:"id" db:"id"`
	RequirementID int64 `json:"requirement_id" db:"requirement_id"`
	SubmittedBy   int64 `json:"submitted_by" db:"submitted_by"`
	Count         int64 `json:"count" db:"count"`
	Created       int64 `json:"created" db:"created"`
}

// Assignment is the single active assignment for a requirement. A new
// assignment overwrites the previous one; there is no assignment history.
type Assignment struct {
	RequirementID int64 `json:"requirement_id" db:"requirement_id"`
	EmployeeID    int64 `json:"employee_id" db:"employee_id"`
	AssignedBy    int64 `json:"assigned_by" db:"assigned_by"`
	Assigned      int64 `json:"assigned" db:"assigned"`
}

// Summary is the dashboard aggregate, scoped to the caller's visible
// requirements. Issues counts remark rows of type issue, not requirements.
type Summary struct {
	TotalRequirements int64           `json:"total_requirements"`
	Completed         int64           `json:"completed"`
	Pending           int64           `json:"pending"`
	Issues            int64           `json:"issues"`
	TeamPerformance   TeamPerformance `json:"team_performance"`
}

type TeamPerformance struct {
	TotalSubmissions int64 `json:"total_submissions"`
}
