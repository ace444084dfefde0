package authz

import (
	"errors"
	"testing"
)

func staticMemberships(memberships map[[2]uint]Role) MembershipResolver {
	return MembershipResolverFunc(func(userID, organizationID uint) (Role, bool) {
		role, ok := memberships[[2]uint{userID, organizationID}]
		return role, ok
	})
}

func orgPtr(id uint) *uint { return &id }

func TestAuthorize_NoOrganizationSelected(t *testing.T) {
	guard := NewGuard(staticMemberships(map[[2]uint]Role{
		{1, 1}: RoleAdministrator,
	}))

	err := guard.Authorize(Request{UserID: 1, Method: "GET", Kind: "project"})
	if !errors.Is(err, ErrNoOrganization) {
		t.Errorf("expected ErrNoOrganization, got %v", err)
	}
}

func TestAuthorize_NonMemberDenied(t *testing.T) {
	guard := NewGuard(staticMemberships(nil))

	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		err := guard.Authorize(Request{
			UserID:      1,
			SelectedOrg: orgPtr(1),
			Method:      method,
			Kind:        "project",
			ObjectOrg:   orgPtr(1),
		})
		if !errors.Is(err, ErrAccessDenied) {
			t.Errorf("%s: expected ErrAccessDenied for non-member, got %v", method, err)
		}
	}
}

func TestAuthorize_CrossOrganizationDenied(t *testing.T) {
	// Administrator of org 1 targets an object owned by org 2
	guard := NewGuard(staticMemberships(map[[2]uint]Role{
		{1, 1}: RoleAdministrator,
	}))

	err := guard.Authorize(Request{
		UserID:      1,
		SelectedOrg: orgPtr(1),
		Method:      "GET",
		Kind:        "project",
		ObjectOrg:   orgPtr(2),
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for cross-organization access, got %v", err)
	}
}

func TestAuthorize_ReaderPermissions(t *testing.T) {
	guard := NewGuard(staticMemberships(map[[2]uint]Role{
		{1, 1}: RoleReader,
	}))

	tests := []struct {
		name    string
		method  string
		object  *uint
		allowed bool
	}{
		{"list", "GET", nil, true},
		{"view", "GET", orgPtr(1), true},
		{"create", "POST", nil, false},
		{"update", "PUT", orgPtr(1), false},
		{"delete", "DELETE", orgPtr(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Authorize(Request{
				UserID:      1,
				SelectedOrg: orgPtr(1),
				Method:      tt.method,
				Kind:        "project",
				ObjectOrg:   tt.object,
			})
			if tt.allowed && err != nil {
				t.Errorf("expected allow, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrAccessDenied) {
				t.Errorf("expected ErrAccessDenied, got %v", err)
			}
		})
	}
}

func TestAuthorize_WriterFullAccess(t *testing.T) {
	guard := NewGuard(staticMemberships(map[[2]uint]Role{
		{1, 1}: RoleWriter,
	}))

	requests := []Request{
		{UserID: 1, SelectedOrg: orgPtr(1), Method: "GET", Kind: "project"},
		{UserID: 1, SelectedOrg: orgPtr(1), Method: "POST", Kind: "project"},
		{UserID: 1, SelectedOrg: orgPtr(1), Method: "PUT", Kind: "project", ObjectOrg: orgPtr(1)},
		{UserID: 1, SelectedOrg: orgPtr(1), Method: "DELETE", Kind: "project", ObjectOrg: orgPtr(1), Destructive: true},
	}
	for _, req := range requests {
		if err := guard.Authorize(req); err != nil {
			t.Errorf("%s: expected allow for writer, got %v", req.Method, err)
		}
	}
}

func TestAuthorize_DestructiveNeedsDelete(t *testing.T) {
	// a role granting everything except delete
	custom := MembershipResolverFunc(func(userID, organizationID uint) (Role, bool) {
		return RoleReader, true
	})
	guard := NewGuard(custom)

	err := guard.Authorize(Request{
		UserID:      1,
		SelectedOrg: orgPtr(1),
		Method:      "POST",
		Kind:        "audit",
		ObjectOrg:   orgPtr(1),
		Destructive: true,
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for destructive request, got %v", err)
	}
}

func TestAuthorize_OwnershipCheckedBeforeMembership(t *testing.T) {
	// The resolver must not even be consulted for a foreign object
	called := false
	guard := NewGuard(MembershipResolverFunc(func(userID, organizationID uint) (Role, bool) {
		called = true
		return RoleAdministrator, true
	}))

	err := guard.Authorize(Request{
		UserID:      1,
		SelectedOrg: orgPtr(1),
		Method:      "GET",
		Kind:        "project",
		ObjectOrg:   orgPtr(2),
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
	if called {
		t.Error("membership resolver should not be consulted for a foreign object")
	}
}
