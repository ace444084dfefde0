package authz

// Role is an organization-scoped role name. Roles are a fixed set; the
// capability each role grants is a lookup table, not code.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleWriter        Role = "writer"
	RoleReader        Role = "reader"
)

// Action is the generic capability verb applied to a resource kind.
type Action string

const (
	ActionView   Action = "view"
	ActionAdd    Action = "add"
	ActionChange Action = "change"
	ActionDelete Action = "delete"
)

// roleActions maps each role to the actions it grants on every resource
// kind. Administrator and writer currently grant the same CRUD set; reader
// is view-only.
var roleActions = map[Role]map[Action]bool{
	RoleAdministrator: {ActionView: true, ActionAdd: true, ActionChange: true, ActionDelete: true},
	RoleWriter:        {ActionView: true, ActionAdd: true, ActionChange: true, ActionDelete: true},
	RoleReader:        {ActionView: true},
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleActions[r]
	return ok
}

// Grants reports whether the role grants the given action.
func (r Role) Grants(action Action) bool {
	actions, ok := roleActions[r]
	if !ok {
		return false
	}
	return actions[action]
}

// ActionFor maps an HTTP verb to the required action.
//
// GET reads; POST without a target object creates; POST/PUT/PATCH with a
// target object changes; destructive operations delete regardless of the
// verb used to invoke them. Any other verb falls back to view.
func ActionFor(method string, hasObject, destructive bool) Action {
	if destructive {
		return ActionDelete
	}
	switch method {
	case "GET":
		return ActionView
	case "POST":
		if hasObject {
			return ActionChange
		}
		return ActionAdd
	case "PUT", "PATCH":
		if hasObject {
			return ActionChange
		}
		return ActionAdd
	case "DELETE":
		return ActionDelete
	default:
		return ActionView
	}
}
