package models

import (
	"time"
)

// Project belongs to exactly one organization and owns resources and audits.
// Name and slug are unique per organization, not globally.
type Project struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrganizationID uint          `gorm:"uniqueIndex:idx_project_org_name;uniqueIndex:idx_project_org_slug;not null" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
	Name           string        `gorm:"uniqueIndex:idx_project_org_name;size:255;not null" json:"name"`
	Slug           string        `gorm:"uniqueIndex:idx_project_org_slug;size:255;not null" json:"slug"`
	Description    string        `gorm:"type:text" json:"description"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Resource types
const (
	ResourceFrontendCode   = "frontend_code"
	ResourceBackendCode    = "backend_code"
	ResourceInfrastructure = "infrastructure"
	ResourceTechnicalDoc   = "technical_documentation"
	ResourceBusinessDoc    = "business_documentation"
)

// ResourceTypes lists the accepted resource type values.
var ResourceTypes = []string{
	ResourceFrontendCode,
	ResourceBackendCode,
	ResourceInfrastructure,
	ResourceTechnicalDoc,
	ResourceBusinessDoc,
}

// Resource is a typed external link attached to a project (code repository,
// documentation, infrastructure).
type Resource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"index;not null" json:"project_id"`
	Project     *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Type        string    `gorm:"size:50;not null" json:"type"`
	URL         string    `gorm:"size:500" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Project) TableName() string  { return "projects" }
func (Resource) TableName() string { return "resources" }
