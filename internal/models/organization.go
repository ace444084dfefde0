package models

import (
	"time"
)

// Organization is the tenant root. Every protected resource resolves to
// exactly one organization through its ownership chain.
type Organization struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrganizationMember links a user to an organization with a role.
// One membership per (user, organization); at most one default per user.
type OrganizationMember struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	UserID         uint          `gorm:"uniqueIndex:idx_org_member_user_org;not null" json:"user_id"`
	User           *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	OrganizationID uint          `gorm:"uniqueIndex:idx_org_member_user_org;not null" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
	Role           string        `gorm:"size:50;not null" json:"role"` // administrator, writer, reader
	IsDefault      bool          `gorm:"default:false" json:"is_default"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// UserSession holds the caller's currently selected organization. It is
// written by the login and organization-switch flows and only read by the
// authorization layer.
type UserSession struct {
	ID                      uint      `gorm:"primaryKey" json:"id"`
	UserID                  uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CurrentOrganizationID   *uint     `json:"current_organization_id"`
	CurrentOrganizationName string    `gorm:"size:255" json:"current_organization_name"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (Organization) TableName() string       { return "organizations" }
func (OrganizationMember) TableName() string { return "organization_members" }
func (UserSession) TableName() string        { return "user_sessions" }
