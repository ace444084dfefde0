// Package authz implements the organization-scoped authorization guard.
//
// The guard is a stateless gate evaluated once per request, before any
// resource logic runs. It verifies that the caller has selected an
// organization, that the targeted object (if any) belongs to that
// organization, and that the caller's role in the organization grants the
// capability required by the request.
package authz

import "errors"

var (
	// ErrNoOrganization is a precondition failure: the caller has not
	// selected an organization. Surfaced distinctly so the UI can prompt
	// for a selection instead of showing a generic error.
	ErrNoOrganization = errors.New("no organization selected")

	// ErrAccessDenied covers every authorization failure: ownership
	// mismatch, missing membership, insufficient role. Callers must not
	// distinguish these cases, and the HTTP boundary maps them to the
	// same not-found outcome to avoid leaking cross-tenant existence.
	ErrAccessDenied = errors.New("access denied")
)

// MembershipResolver returns the caller's role in an organization, or
// ok=false when no membership exists.
type MembershipResolver interface {
	RoleOf(userID, organizationID uint) (Role, bool)
}

// MembershipResolverFunc adapts a function to the MembershipResolver interface.
type MembershipResolverFunc func(userID, organizationID uint) (Role, bool)

func (f MembershipResolverFunc) RoleOf(userID, organizationID uint) (Role, bool) {
	return f(userID, organizationID)
}

// Request describes one guard evaluation.
type Request struct {
	UserID uint

	// SelectedOrg is the organization currently selected in the caller's
	// session; nil when none is selected.
	SelectedOrg *uint

	// Method is the HTTP verb of the request.
	Method string

	// Kind identifies the resource type, e.g. "project" or "comment".
	Kind string

	// ObjectOrg is the owning organization of the targeted object,
	// resolved through its ownership chain; nil for list and create
	// operations that target no object.
	ObjectOrg *uint

	// Destructive marks delete operations regardless of verb.
	Destructive bool
}

// Guard gates requests against organization-scoped resources.
type Guard struct {
	memberships MembershipResolver
}

func NewGuard(memberships MembershipResolver) *Guard {
	return &Guard{memberships: memberships}
}

// Authorize evaluates one request. It returns nil when the request may
// proceed, ErrNoOrganization when no organization is selected, and
// ErrAccessDenied for every other failure.
func (g *Guard) Authorize(req Request) error {
	if req.SelectedOrg == nil {
		return ErrNoOrganization
	}

	if req.ObjectOrg != nil && *req.ObjectOrg != *req.SelectedOrg {
		return ErrAccessDenied
	}

	action := ActionFor(req.Method, req.ObjectOrg != nil, req.Destructive)

	role, ok := g.memberships.RoleOf(req.UserID, *req.SelectedOrg)
	if !ok {
		return ErrAccessDenied
	}

	if !role.Grants(action) {
		return ErrAccessDenied
	}

	return nil
}
