package services

import (
	"github.com/audithub/audithub/internal/models"
	"gorm.io/gorm"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

type TagRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (s *TagService) List(orgID uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) Create(orgID uint, req *TagRequest) (*models.Tag, error) {
	tag := &models.Tag{
		OrganizationID: orgID,
		Name:           req.Name,
	}
	if err := s.db.Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Update(id uint, req *TagRequest) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		return nil, err
	}

	tag.Name = req.Name
	if err := s.db.Save(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) Delete(id uint) error {
	return s.db.Delete(&models.Tag{}, id).Error
}
