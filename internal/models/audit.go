package models

import (
	"encoding/json"
	"time"
)

// AuditLibrary is a reusable set of criteria owned by one organization.
// Name and slug are unique per organization.
type AuditLibrary struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrganizationID uint          `gorm:"uniqueIndex:idx_library_org_name;uniqueIndex:idx_library_org_slug;not null" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
	Name           string        `gorm:"uniqueIndex:idx_library_org_name;size:255;not null" json:"name"`
	Slug           string        `gorm:"uniqueIndex:idx_library_org_slug;size:255;not null" json:"slug"`
	Description    string        `gorm:"type:text" json:"description"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Criterion belongs to one audit library. The public identifier is what
// auditors use to reference it (e.g. "SEC-4.2"), unique within the library.
type Criterion struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	AuditLibraryID uint          `gorm:"uniqueIndex:idx_criterion_library_public_id;not null" json:"audit_library_id"`
	AuditLibrary   *AuditLibrary `gorm:"foreignKey:AuditLibraryID;constraint:OnDelete:CASCADE" json:"audit_library,omitempty"`
	PublicID       string        `gorm:"uniqueIndex:idx_criterion_library_public_id;size:255;not null" json:"public_id"`
	Name           string        `gorm:"size:255;not null" json:"name"`
	Description    string        `gorm:"type:text" json:"description"`
	Tags           []Tag         `gorm:"many2many:criterion_tags;" json:"tags,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Tag is organization-scoped; different organizations may reuse a tag name.
type Tag struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrganizationID uint          `gorm:"uniqueIndex:idx_tag_org_name;not null" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
	Name           string        `gorm:"uniqueIndex:idx_tag_org_name;size:255;not null" json:"name"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ProjectAudit lifecycle status
const (
	AuditStatusActive   = "active"
	AuditStatusArchived = "archived"
)

// ProjectAudit instantiates an audit library against a project: a snapshot
// of criteria to evaluate.
type ProjectAudit struct {
	ID             uint                    `gorm:"primaryKey" json:"id"`
	ProjectID      uint                    `gorm:"index;not null" json:"project_id"`
	Project        *Project                `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	AuditLibraryID uint                    `gorm:"index;not null" json:"audit_library_id"`
	AuditLibrary   *AuditLibrary           `gorm:"foreignKey:AuditLibraryID;constraint:OnDelete:CASCADE" json:"audit_library,omitempty"`
	Status         string                  `gorm:"size:50;default:active" json:"status"` // active, archived
	Criteria       []ProjectAuditCriterion `gorm:"foreignKey:ProjectAuditID" json:"criteria,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// Compliance status of one criterion within a project audit. Transitions
// are unrestricted; any value may be revisited.
const (
	StatusNotHandledYet      = "NOT_HANDLED_YET"
	StatusNotCompliant       = "NOT_COMPLIANT"
	StatusPartiallyCompliant = "PARTIALLY_COMPLIANT"
	StatusCompliant          = "COMPLIANT"
	StatusNotApplicable      = "NOT_APPLICABLE"
)

// CriterionStatuses lists the accepted compliance status values.
var CriterionStatuses = []string{
	StatusNotHandledYet,
	StatusNotCompliant,
	StatusPartiallyCompliant,
	StatusCompliant,
	StatusNotApplicable,
}

// ProjectAuditCriterion is one criterion row inside a project audit,
// carrying its mutable compliance status.
type ProjectAuditCriterion struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ProjectAuditID uint          `gorm:"index;not null" json:"project_audit_id"`
	ProjectAudit   *ProjectAudit `gorm:"foreignKey:ProjectAuditID;constraint:OnDelete:CASCADE" json:"project_audit,omitempty"`
	CriterionID    uint          `gorm:"index;not null" json:"criterion_id"`
	Criterion      *Criterion    `gorm:"foreignKey:CriterionID;constraint:OnDelete:CASCADE" json:"criterion,omitempty"`
	Status         string        `gorm:"size:50;default:NOT_HANDLED_YET" json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Comment is a free-text note on an audit criterion by one user.
type Comment struct {
	ID                      uint                   `gorm:"primaryKey" json:"id"`
	ProjectAuditCriterionID uint                   `gorm:"index;not null" json:"project_audit_criterion_id"`
	ProjectAuditCriterion   *ProjectAuditCriterion `gorm:"foreignKey:ProjectAuditCriterionID;constraint:OnDelete:CASCADE" json:"project_audit_criterion,omitempty"`
	UserID                  uint                   `gorm:"index;not null" json:"user_id"`
	User                    *User                  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Body                    string                 `gorm:"type:text;not null" json:"body"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

// Prompt message roles
const (
	PromptRoleUser      = "user"
	PromptRoleAssistant = "assistant"
	PromptRoleError     = "error"
)

// PromptMessage is one entry in a chat session history.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Prompt is an AI chat session scoped to one audit criterion. The message
// history is stored as an ordered JSON document, append-only.
type Prompt struct {
	ID                      uint                   `gorm:"primaryKey" json:"id"`
	SessionID               string                 `gorm:"uniqueIndex;size:36;not null" json:"session_id"`
	ProjectAuditCriterionID uint                   `gorm:"index;not null" json:"project_audit_criterion_id"`
	ProjectAuditCriterion   *ProjectAuditCriterion `gorm:"foreignKey:ProjectAuditCriterionID;constraint:OnDelete:CASCADE" json:"project_audit_criterion,omitempty"`
	Name                    string                 `gorm:"size:255" json:"name"`
	Messages                string                 `gorm:"type:text" json:"-"` // JSON: {"messages":[{"role":...,"content":...}]}
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

type promptDocument struct {
	Messages []PromptMessage `json:"messages"`
}

// MessageHistory decodes the persisted JSON document. An empty or invalid
// document yields an empty history rather than an error.
func (p *Prompt) MessageHistory() []PromptMessage {
	if p.Messages == "" {
		return nil
	}
	var doc promptDocument
	if err := json.Unmarshal([]byte(p.Messages), &doc); err != nil {
		return nil
	}
	return doc.Messages
}

// SetMessageHistory encodes and stores the full message list.
func (p *Prompt) SetMessageHistory(messages []PromptMessage) error {
	data, err := json.Marshal(promptDocument{Messages: messages})
	if err != nil {
		return err
	}
	p.Messages = string(data)
	return nil
}

// TableName overrides
func (AuditLibrary) TableName() string          { return "audit_libraries" }
func (Criterion) TableName() string             { return "criteria" }
func (Tag) TableName() string                   { return "tags" }
func (ProjectAudit) TableName() string          { return "project_audits" }
func (ProjectAuditCriterion) TableName() string { return "project_audit_criteria" }
func (Comment) TableName() string               { return "comments" }
func (Prompt) TableName() string                { return "prompts" }
