package middleware

import (
	"github.com/gin-gonic/gin"
)

const ContextOrgID = "organization_id"

// OrgSelector reports the organization currently selected in a user's
// session; ok=false when none is selected.
type OrgSelector interface {
	SelectedOrganization(userID uint) (uint, bool)
}

// OrganizationScope loads the caller's selected organization into the
// request context. It never rejects by itself; the guard decides whether
// a missing selection is fatal for the route.
func OrganizationScope(selector OrgSelector) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID > 0 {
			if orgID, ok := selector.SelectedOrganization(userID); ok {
				c.Set(ContextOrgID, orgID)
			}
		}
		c.Next()
	}
}

// GetOrgID returns the selected organization from context, or nil when
// the caller has not selected one.
func GetOrgID(c *gin.Context) *uint {
	if v, exists := c.Get(ContextOrgID); exists {
		id := v.(uint)
		return &id
	}
	return nil
}
