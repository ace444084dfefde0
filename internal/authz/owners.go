package authz

import (
	"fmt"
	"sort"
)

// OwnerResolver walks an object's ownership chain and returns the id of
// its owning organization. ok=false means the object does not exist; the
// caller must treat that the same as an ownership mismatch.
type OwnerResolver func(objectID uint) (organizationID uint, ok bool)

// OwnerRegistry maps resource kinds to their ownership-chain resolvers.
// Every protected kind must register exactly one resolver; the routing
// layer validates the set at startup via MustResolve.
type OwnerRegistry struct {
	resolvers map[string]OwnerResolver
}

func NewOwnerRegistry() *OwnerRegistry {
	return &OwnerRegistry{resolvers: make(map[string]OwnerResolver)}
}

// Register installs the resolver for a kind. Registering a kind twice is a
// programming error.
func (r *OwnerRegistry) Register(kind string, resolver OwnerResolver) {
	if _, exists := r.resolvers[kind]; exists {
		panic(fmt.Sprintf("authz: owner resolver for kind %q registered twice", kind))
	}
	r.resolvers[kind] = resolver
}

// Resolve returns the owning organization of an object of the given kind.
func (r *OwnerRegistry) Resolve(kind string, objectID uint) (uint, bool) {
	resolver, ok := r.resolvers[kind]
	if !ok {
		return 0, false
	}
	return resolver(objectID)
}

// MustResolve panics unless a resolver is registered for the kind. Called
// at route-registration time so a missing resolver fails at startup, not
// on the first request.
func (r *OwnerRegistry) MustResolve(kind string) {
	if _, ok := r.resolvers[kind]; !ok {
		panic(fmt.Sprintf("authz: no owner resolver registered for kind %q", kind))
	}
}

// Kinds returns the registered kinds, sorted.
func (r *OwnerRegistry) Kinds() []string {
	kinds := make([]string, 0, len(r.resolvers))
	for k := range r.resolvers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
