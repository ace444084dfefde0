package services

import (
	"github.com/audithub/audithub/internal/authz"
	"github.com/audithub/audithub/internal/models"
	"gorm.io/gorm"
)

// Resource kind names used by the authorization layer and routing.
const (
	KindOrganization   = "organization"
	KindLibrary        = "library"
	KindCriterion      = "criterion"
	KindTag            = "tag"
	KindProject        = "project"
	KindResource       = "resource"
	KindAudit          = "audit"
	KindAuditCriterion = "audit_criterion"
	KindComment        = "comment"
	KindPrompt         = "prompt"
)

// BuildOwnerRegistry wires every protected kind to a resolver that walks
// its ownership chain down to the owning organization. Each resolver runs
// one query; a missing object reports ok=false, which the authorization
// layer treats exactly like a foreign one.
func BuildOwnerRegistry(db *gorm.DB) *authz.OwnerRegistry {
	registry := authz.NewOwnerRegistry()

	registry.Register(KindOrganization, func(id uint) (uint, bool) {
		var count int64
		db.Model(&models.Organization{}).Where("id = ?", id).Count(&count)
		return id, count > 0
	})

	registry.Register(KindLibrary, scanOwner(db, `
		SELECT organization_id FROM audit_libraries WHERE id = ?`))

	registry.Register(KindCriterion, scanOwner(db, `
		SELECT l.organization_id FROM criteria c
		JOIN audit_libraries l ON l.id = c.audit_library_id
		WHERE c.id = ?`))

	registry.Register(KindTag, scanOwner(db, `
		SELECT organization_id FROM tags WHERE id = ?`))

	registry.Register(KindProject, scanOwner(db, `
		SELECT organization_id FROM projects WHERE id = ?`))

	registry.Register(KindResource, scanOwner(db, `
		SELECT p.organization_id FROM resources r
		JOIN projects p ON p.id = r.project_id
		WHERE r.id = ?`))

	registry.Register(KindAudit, scanOwner(db, `
		SELECT p.organization_id FROM project_audits a
		JOIN projects p ON p.id = a.project_id
		WHERE a.id = ?`))

	registry.Register(KindAuditCriterion, scanOwner(db, `
		SELECT p.organization_id FROM project_audit_criteria pac
		JOIN project_audits a ON a.id = pac.project_audit_id
		JOIN projects p ON p.id = a.project_id
		WHERE pac.id = ?`))

	registry.Register(KindComment, scanOwner(db, `
		SELECT p.organization_id FROM comments c
		JOIN project_audit_criteria pac ON pac.id = c.project_audit_criterion_id
		JOIN project_audits a ON a.id = pac.project_audit_id
		JOIN projects p ON p.id = a.project_id
		WHERE c.id = ?`))

	registry.Register(KindPrompt, scanOwner(db, `
		SELECT p.organization_id FROM prompts pr
		JOIN project_audit_criteria pac ON pac.id = pr.project_audit_criterion_id
		JOIN project_audits a ON a.id = pac.project_audit_id
		JOIN projects p ON p.id = a.project_id
		WHERE pr.id = ?`))

	return registry
}

func scanOwner(db *gorm.DB, query string) authz.OwnerResolver {
	return func(id uint) (uint, bool) {
		var orgID uint
		result := db.Raw(query, id).Scan(&orgID)
		if result.Error != nil || result.RowsAffected == 0 {
			return 0, false
		}
		return orgID, true
	}
}
