package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/audithub/audithub/internal/models"
	"github.com/audithub/audithub/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuditHandler(t *testing.T) (*ProjectAuditHandler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Organization{},
		&models.Project{},
		&models.AuditLibrary{},
		&models.Criterion{},
		&models.Tag{},
		&models.ProjectAudit{},
		&models.ProjectAuditCriterion{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewProjectAuditHandler(services.NewProjectAuditService(db)), db
}

func archiveRequest(handler *ProjectAuditHandler, id string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest("POST", "/api/audits/"+id+"/archive", nil)
	handler.Archive(c)
	return w
}

func TestArchive_UnknownAuditLooksMissing(t *testing.T) {
	handler, _ := newAuditHandler(t)

	w := archiveRequest(handler, "999")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusNotFound)
	}
}

func TestArchive_MarksAuditArchived(t *testing.T) {
	handler, db := newAuditHandler(t)

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
	audit := models.ProjectAudit{ProjectID: project.ID, AuditLibraryID: library.ID, Status: models.AuditStatusActive}
	if err := db.Create(&audit).Error; err != nil {
		t.Fatalf("failed to create audit: %v", err)
	}

	w := archiveRequest(handler, strconv.FormatUint(uint64(audit.ID), 10))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var stored models.ProjectAudit
	if err := db.First(&stored, audit.ID).Error; err != nil {
		t.Fatalf("failed to reload audit: %v", err)
	}
	if stored.Status != models.AuditStatusArchived {
		t.Errorf("status = %q, expected %q", stored.Status, models.AuditStatusArchived)
	}
}
