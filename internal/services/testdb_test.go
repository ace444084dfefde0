package services

import (
	"testing"

	"github.com/audithub/audithub/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.UserSession{},
		&models.Project{},
		&models.Resource{},
		&models.AuditLibrary{},
		&models.Criterion{},
		&models.Tag{},
		&models.ProjectAudit{},
		&models.ProjectAuditCriterion{},
		&models.Comment{},
		&models.Prompt{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedAuditCriterion builds the full ownership chain down to one audit
// criterion row and returns it.
func seedAuditCriterion(t *testing.T, db *gorm.DB) *models.ProjectAuditCriterion {
	t.Helper()

	org := models.Organization{Name: "Acme", Slug: "acme"}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}

	project := models.Project{OrganizationID: org.ID, Name: "Checkout", Slug: "checkout"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	library := models.AuditLibrary{OrganizationID: org.ID, Name: "Security", Slug: "security"}
	if err := db.Create(&library).Error; err != nil {
		t.Fatalf("failed to create library: %v", err)
	}

	criterion := models.Criterion{AuditLibraryID: library.ID, PublicID: "SEC-1", Name: "Transport encryption"}
	if err := db.Create(&criterion).Error; err != nil {
		t.Fatalf("failed to create criterion: %v", err)
	}

	audit := models.ProjectAudit{ProjectID: project.ID, AuditLibraryID: library.ID, Status: models.AuditStatusActive}
	if err := db.Create(&audit).Error; err != nil {
		t.Fatalf("failed to create audit: %v", err)
	}

	row := models.ProjectAuditCriterion{
		ProjectAuditID: audit.ID,
		CriterionID:    criterion.ID,
		Status:         models.StatusNotHandledYet,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create audit criterion: %v", err)
	}

	return &row
}
