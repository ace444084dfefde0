package services

import (
	"errors"

	"github.com/audithub/audithub/internal/models"
	"github.com/audithub/audithub/internal/utils"
	"gorm.io/gorm"
)

type LibraryService struct {
	db *gorm.DB
}

func NewLibraryService(db *gorm.DB) *LibraryService {
	return &LibraryService{db: db}
}

type LibraryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

func (s *LibraryService) List(orgID uint) ([]models.AuditLibrary, error) {
	var libraries []models.AuditLibrary
	if err := s.db.Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&libraries).Error; err != nil {
		return nil, err
	}
	return libraries, nil
}

func (s *LibraryService) Get(id uint) (*models.AuditLibrary, error) {
	var library models.AuditLibrary
	if err := s.db.First(&library, id).Error; err != nil {
		return nil, err
	}
	return &library, nil
}

func (s *LibraryService) Create(orgID uint, req *LibraryRequest) (*models.AuditLibrary, error) {
	library := &models.AuditLibrary{
		OrganizationID: orgID,
		Name:           req.Name,
		Slug:           utils.Slugify(req.Name),
		Description:    req.Description,
	}
	if err := s.db.Create(library).Error; err != nil {
		return nil, err
	}
	return library, nil
}

func (s *LibraryService) Update(id uint, req *LibraryRequest) (*models.AuditLibrary, error) {
	library, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	library.Name = req.Name
	library.Slug = utils.Slugify(req.Name)
	library.Description = req.Description
	if err := s.db.Save(library).Error; err != nil {
		return nil, err
	}
	return library, nil
}

func (s *LibraryService) Delete(id uint) error {
	return s.db.Delete(&models.AuditLibrary{}, id).Error
}

// --- criteria ---

type CriterionRequest struct {
	PublicID    string `json:"public_id" binding:"required,max=255"`
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	TagIDs      []uint `json:"tag_ids"`
}

func (s *LibraryService) ListCriteria(libraryID uint) ([]models.Criterion, error) {
	var criteria []models.Criterion
	if err := s.db.Preload("Tags").
		Where("audit_library_id = ?", libraryID).
		Order("public_id ASC").
		Find(&criteria).Error; err != nil {
		return nil, err
	}
	return criteria, nil
}

func (s *LibraryService) GetCriterion(id uint) (*models.Criterion, error) {
	var criterion models.Criterion
	if err := s.db.Preload("Tags").First(&criterion, id).Error; err != nil {
		return nil, err
	}
	return &criterion, nil
}

func (s *LibraryService) CreateCriterion(libraryID uint, req *CriterionRequest) (*models.Criterion, error) {
	library, err := s.Get(libraryID)
	if err != nil {
		return nil, err
	}

	tags, err := s.loadTags(library.OrganizationID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	criterion := &models.Criterion{
		AuditLibraryID: libraryID,
		PublicID:       req.PublicID,
		Name:           req.Name,
		Description:    req.Description,
		Tags:           tags,
	}
	if err := s.db.Create(criterion).Error; err != nil {
		return nil, err
	}
	return criterion, nil
}

func (s *LibraryService) UpdateCriterion(id uint, req *CriterionRequest) (*models.Criterion, error) {
	criterion, err := s.GetCriterion(id)
	if err != nil {
		return nil, err
	}

	library, err := s.Get(criterion.AuditLibraryID)
	if err != nil {
		return nil, err
	}

	tags, err := s.loadTags(library.OrganizationID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	criterion.PublicID = req.PublicID
	criterion.Name = req.Name
	criterion.Description = req.Description

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(criterion).Error; err != nil {
			return err
		}
		return tx.Model(criterion).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}

	criterion.Tags = tags
	return criterion, nil
}

func (s *LibraryService) DeleteCriterion(id uint) error {
	return s.db.Delete(&models.Criterion{}, id).Error
}

// loadTags fetches tags by id and checks they all belong to the given
// organization. Tags from another organization are rejected outright.
func (s *LibraryService) loadTags(orgID uint, tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	var tags []models.Tag
	if err := s.db.Where("id IN ? AND organization_id = ?", tagIDs, orgID).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, errors.New("unknown tag")
	}
	return tags, nil
}
