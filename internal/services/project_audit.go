package services

import (
	"errors"

	"github.com/audithub/audithub/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUnknownLibrary = errors.New("unknown audit library")
	ErrInvalidStatus  = errors.New("invalid compliance status")
	ErrAuditArchived  = errors.New("audit is archived")
)

type ProjectAuditService struct {
	db *gorm.DB
}

func NewProjectAuditService(db *gorm.DB) *ProjectAuditService {
	return &ProjectAuditService{db: db}
}

type CreateAuditRequest struct {
	AuditLibraryID uint `json:"audit_library_id" binding:"required"`
}

// Create instantiates a library against a project. Every criterion in the
// library gets a snapshot row starting at NOT_HANDLED_YET; later changes to
// the library do not touch existing audits. A library from another
// organization is reported as unknown.
func (s *ProjectAuditService) Create(projectID uint, req *CreateAuditRequest) (*models.ProjectAudit, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, err
	}

	var library models.AuditLibrary
	err := s.db.Where("id = ? AND organization_id = ?", req.AuditLibraryID, project.OrganizationID).
		First(&library).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownLibrary
		}
		return nil, err
	}

	var criteria []models.Criterion
	if err := s.db.Where("audit_library_id = ?", library.ID).
		Order("public_id ASC").
		Find(&criteria).Error; err != nil {
		return nil, err
	}

	audit := &models.ProjectAudit{
		ProjectID:      projectID,
		AuditLibraryID: library.ID,
		Status:         models.AuditStatusActive,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(audit).Error; err != nil {
			return err
		}

		for _, c := range criteria {
			row := models.ProjectAuditCriterion{
				ProjectAuditID: audit.ID,
				CriterionID:    c.ID,
				Status:         models.StatusNotHandledYet,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(audit.ID)
}

// AuditSummary pairs an audit with its computed progress.
type AuditSummary struct {
	models.ProjectAudit
	Progress Progress `json:"progress"`
}

func (s *ProjectAuditService) List(projectID uint) ([]AuditSummary, error) {
	var audits []models.ProjectAudit
	if err := s.db.Preload("AuditLibrary").Preload("Criteria").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&audits).Error; err != nil {
		return nil, err
	}

	summaries := make([]AuditSummary, 0, len(audits))
	for _, a := range audits {
		summary := AuditSummary{ProjectAudit: a, Progress: ComputeProgress(a.Criteria)}
		// criteria rows are heavy; the list view only needs the rollup
		summary.Criteria = nil
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *ProjectAuditService) Get(id uint) (*models.ProjectAudit, error) {
	var audit models.ProjectAudit
	if err := s.db.Preload("AuditLibrary").
		Preload("Criteria.Criterion.Tags").
		First(&audit, id).Error; err != nil {
		return nil, err
	}
	return &audit, nil
}

// Detail returns an audit with its criteria and progress rollup.
func (s *ProjectAuditService) Detail(id uint) (*AuditSummary, error) {
	audit, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return &AuditSummary{
		ProjectAudit: *audit,
		Progress:     ComputeProgress(audit.Criteria),
	}, nil
}

// Archive marks an audit archived. Archiving an archived audit is a no-op.
func (s *ProjectAuditService) Archive(id uint) (*models.ProjectAudit, error) {
	audit, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if audit.Status != models.AuditStatusArchived {
		if err := s.db.Model(&models.ProjectAudit{}).
			Where("id = ?", id).
			Update("status", models.AuditStatusArchived).Error; err != nil {
			return nil, err
		}
		audit.Status = models.AuditStatusArchived
	}
	return audit, nil
}

func (s *ProjectAuditService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_audit_id = ?", id).
			Delete(&models.ProjectAuditCriterion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ProjectAudit{}, id).Error
	})
}

// --- criterion rows ---

func (s *ProjectAuditService) GetCriterion(id uint) (*models.ProjectAuditCriterion, error) {
	var row models.ProjectAuditCriterion
	if err := s.db.Preload("Criterion.Tags").
		Preload("ProjectAudit").
		First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

type UpdateCriterionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateCriterionStatus sets the compliance status of one criterion row.
// Any status may move to any other status; archived audits are read-only.
func (s *ProjectAuditService) UpdateCriterionStatus(id uint, req *UpdateCriterionStatusRequest) (*models.ProjectAuditCriterion, error) {
	if !validCriterionStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	row, err := s.GetCriterion(id)
	if err != nil {
		return nil, err
	}

	if row.ProjectAudit != nil && row.ProjectAudit.Status == models.AuditStatusArchived {
		return nil, ErrAuditArchived
	}

	if err := s.db.Model(&models.ProjectAuditCriterion{}).
		Where("id = ?", id).
		Update("status", req.Status).Error; err != nil {
		return nil, err
	}
	row.Status = req.Status
	return row, nil
}

func validCriterionStatus(status string) bool {
	for _, s := range models.CriterionStatuses {
		if s == status {
			return true
		}
	}
	return false
}
