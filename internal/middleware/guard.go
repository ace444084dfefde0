package middleware

import (
	"errors"
	"strconv"

	"github.com/audithub/audithub/internal/authz"
	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
)

// Gate returns a middleware that authorizes access to one resource kind.
// When param is non-empty, the named route parameter identifies the target
// object and its ownership chain is resolved before the guard runs; an
// unknown id is indistinguishable from a denied one. When param is empty
// the route targets the collection (list or create).
//
// destructive marks routes that delete data regardless of HTTP verb.
func Gate(guard *authz.Guard, owners *authz.OwnerRegistry, kind, param string, destructive bool) gin.HandlerFunc {
	if param != "" {
		owners.MustResolve(kind)
	}

	return func(c *gin.Context) {
		req := authz.Request{
			UserID:      GetUserID(c),
			SelectedOrg: GetOrgID(c),
			Method:      c.Request.Method,
			Kind:        kind,
			Destructive: destructive,
		}

		if param != "" {
			id, err := strconv.ParseUint(c.Param(param), 10, 64)
			if err != nil {
				response.NotFound(c, "not found")
				c.Abort()
				return
			}
			orgID, ok := owners.Resolve(kind, uint(id))
			if !ok {
				// Missing object and foreign object get the same answer,
				// but the organization precondition is still checked first.
				if req.SelectedOrg == nil {
					response.OrganizationRequired(c)
				} else {
					response.NotFound(c, "not found")
				}
				c.Abort()
				return
			}
			req.ObjectOrg = &orgID
		}

		if err := guard.Authorize(req); err != nil {
			if errors.Is(err, authz.ErrNoOrganization) {
				response.OrganizationRequired(c)
			} else {
				response.NotFound(c, "not found")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}
