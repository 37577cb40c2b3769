package workflow

import "github.com/garnizeh/reqtrack/pkg/models"

// Action names a state-changing or privileged operation on the engine.
type Action string

const (
	ActionRegisterUser      Action = "register_user"
	ActionDeleteUser        Action = "delete_user"
	ActionListUsers         Action = "list_users"
	ActionCreateRequirement Action = "create_requirement"
	ActionToggleStatus      Action = "toggle_status"
	ActionAssign            Action = "assign"
	ActionSubmitProfile     Action = "submit_profile"
	ActionAddRemark         Action = "add_remark"
)

// authzMatrix is the single source of truth for which role may perform
// which action. Scope restrictions (a lead only touching its own team's
// requirements) are enforced by the operations themselves after this check.
var authzMatrix = map[Action]map[models.Role]bool{
	ActionRegisterUser:      {models.RoleSuperadmin: true},
	ActionDeleteUser:        {models.RoleSuperadmin: true},
	ActionListUsers:         {models.RoleSuperadmin: true},
	ActionCreateRequirement: {models.RoleSuperadmin: true, models.RoleLead: true},
	ActionToggleStatus:      {models.RoleSuperadmin: true, models.RoleLead: true},
	ActionAssign:            {models.RoleSuperadmin: true, models.RoleLead: true},
	ActionSubmitProfile:     {models.RoleEmployee: true},
	ActionAddRemark:         {models.RoleSuperadmin: true, models.RoleLead: true, models.RoleEmployee: true},
}

// Allowed reports whether role may perform action.
func Allowed(role models.Role, action Action) bool {
	return authzMatrix[action][role]
}

// authorize returns a Forbidden error unless caller's role may perform
// action. It is consulted exactly once per operation, before any read or
// write.
func authorize(caller *models.User, action Action) error {
	if caller == nil {
		return unauthorizedErr("missing caller identity")
	}
	if !Allowed(caller.Role, action) {
		return forbiddenErr("role " + string(caller.Role) + " may not " + string(action))
	}
	return nil
}
