package mock

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/garnizeh/reqtrack/pkg/models"
	"github.com/garnizeh/reqtrack/pkg/repository"
)

// Store is an in-memory implementation of every repository interface, used
// by handler and engine tests. Setting Err makes every call fail with it.
type Store struct {
	mu          sync.Mutex
	Users       map[int64]*models.User
	Reqs        map[int64]*models.Requirement
	Remarks     []models.Remark
	Submissions []models.Submission
	Assignments map[int64]*models.Assignment
	Err         error

	nextUserID       int64
	nextReqID        int64
	nextRemarkID     int64
	nextSubmissionID int64
	clock            int64
}

var _ repository.UserRepo = (*Store)(nil)
var _ repository.RequirementRepo = (*Store)(nil)
var _ repository.RemarkRepo = (*Store)(nil)
var _ repository.SubmissionRepo = (*Store)(nil)
var _ repository.AssignmentRepo = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		Users:       make(map[int64]*models.User),
		Reqs:        make(map[int64]*models.Requirement),
		Assignments: make(map[int64]*models.Assignment),
	}
}

// AddUser seeds a user and returns it; ids are assigned sequentially.
func (s *Store) AddUser(u models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u.ID = s.nextUserID
	s.Users[u.ID] = &u
	return &u
}

// AddRequirement seeds a requirement and returns it.
func (s *Store) AddRequirement(r models.Requirement) *models.Requirement {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextReqID++
	r.ID = s.nextReqID
	if r.Status == "" {
		r.Status = models.StatusOpen
	}
	s.Reqs[r.ID] = &r
	return &r
}

func (s *Store) tick() int64 {
	s.clock++
	return s.clock
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	for _, existing := range s.Users {
		if existing.Email == u.Email {
			return 0, repository.ErrConflict
		}
	}
	s.nextUserID++
	cp := *u
	cp.ID = s.nextUserID
	cp.Created = s.tick()
	s.Users[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if u, ok := s.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.User, 0, len(s.Users))
	for _, u := range s.Users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.Users, id)
	return nil
}

func (s *Store) CreateRequirement(ctx context.Context, r *models.Requirement) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	s.nextReqID++
	cp := *r
	cp.ID = s.nextReqID
	cp.Created = s.tick()
	s.Reqs[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) GetRequirement(ctx context.Context, id int64) (*models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if r, ok := s.Reqs[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) listReqs(filter func(*models.Requirement) bool) []models.Requirement {
	out := make([]models.Requirement, 0, len(s.Reqs))
	for _, r := range s.Reqs {
		if filter == nil || filter(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *Store) ListRequirements(ctx context.Context) ([]models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.listReqs(nil), nil
}

func (s *Store) ListTeamRequirements(ctx context.Context, leadID int64) ([]models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.listReqs(func(r *models.Requirement) bool {
		if r.CreatedBy == leadID {
			return true
		}
		creator, ok := s.Users[r.CreatedBy]
		return ok && creator.LeadID != nil && *creator.LeadID == leadID
	}), nil
}

func (s *Store) ListEmployeeRequirements(ctx context.Context, employeeID int64) ([]models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.listReqs(func(r *models.Requirement) bool {
		if r.Status == models.StatusOpen {
			return true
		}
		return r.AssigneeID != nil && *r.AssigneeID == employeeID
	}), nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if r, ok := s.Reqs[id]; ok {
		r.Status = status
	}
	return nil
}

func (s *Store) CreateRemark(ctx context.Context, r *models.Remark) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	s.nextRemarkID++
	cp := *r
	cp.ID = s.nextRemarkID
	cp.Created = s.tick()
	s.Remarks = append(s.Remarks, cp)
	return cp.ID, nil
}

func (s *Store) ListRemarks(ctx context.Context, requirementID int64) ([]models.Remark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Remark
	for _, m := range s.Remarks {
		if m.RequirementID == requirementID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Created != out[j].Created {
			return out[i].Created < out[j].Created
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CountIssues(ctx context.Context, requirementIDs []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	ids := make(map[int64]bool, len(requirementIDs))
	for _, id := range requirementIDs {
		ids[id] = true
	}
	var count int64
	for _, m := range s.Remarks {
		if m.RemarkType == models.RemarkTypeIssue && ids[m.RequirementID] {
			count++
		}
	}
	return count, nil
}

func (s *Store) SubmitProfile(ctx context.Context, sub *models.Submission) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	req, ok := s.Reqs[sub.RequirementID]
	if !ok || req.Status != models.StatusOpen {
		return 0, repository.ErrRequirementClosed
	}
	s.nextSubmissionID++
	cp := *sub
	cp.ID = s.nextSubmissionID
	cp.Created = s.tick()
	s.Submissions = append(s.Submissions, cp)
	req.ProfilesSubmitted += cp.Count
	return cp.ID, nil
}

func (s *Store) ListSubmissions(ctx context.Context, requirementID int64) ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Submission
	for _, sub := range s.Submissions {
		if sub.RequirementID == requirementID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *Store) TotalSubmissions(ctx context.Context, requirementIDs []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	ids := make(map[int64]bool, len(requirementIDs))
	for _, id := range requirementIDs {
		ids[id] = true
	}
	var total int64
	for _, sub := range s.Submissions {
		if ids[sub.RequirementID] {
			total += sub.Count
		}
	}
	return total, nil
}

func (s *Store) AssignEmployee(ctx context.Context, a *models.Assignment, recruiterName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	req, ok := s.Reqs[a.RequirementID]
	if !ok {
		return errors.New("requirement not found")
	}
	cp := *a
	cp.Assigned = s.tick()
	s.Assignments[a.RequirementID] = &cp
	req.AssigneeID = &cp.EmployeeID
	name := recruiterName
	req.RecruiterName = &name
	return nil
}

func (s *Store) GetAssignment(ctx context.Context, requirementID int64) (*models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if a, ok := s.Assignments[requirementID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}
