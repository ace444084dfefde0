package services

import (
	"errors"

	"github.com/audithub/audithub/internal/models"
	"github.com/audithub/audithub/internal/utils"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

func (s *ProjectService) List(orgID uint) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) Get(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Create(orgID uint, req *ProjectRequest) (*models.Project, error) {
	project := &models.Project{
		OrganizationID: orgID,
		Name:           req.Name,
		Slug:           utils.Slugify(req.Name),
		Description:    req.Description,
	}
	if err := s.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(id uint, req *ProjectRequest) (*models.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	project.Slug = utils.Slugify(req.Name)
	project.Description = req.Description
	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(id uint) error {
	return s.db.Delete(&models.Project{}, id).Error
}

// --- resources ---

type ResourceRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Type        string `json:"type" binding:"required"`
	URL         string `json:"url" binding:"max=500"`
	Description string `json:"description"`
}

func validResourceType(t string) bool {
	for _, rt := range models.ResourceTypes {
		if rt == t {
			return true
		}
	}
	return false
}

func (s *ProjectService) ListResources(projectID uint) ([]models.Resource, error) {
	var resources []models.Resource
	if err := s.db.Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (s *ProjectService) GetResource(id uint) (*models.Resource, error) {
	var resource models.Resource
	if err := s.db.First(&resource, id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (s *ProjectService) CreateResource(projectID uint, req *ResourceRequest) (*models.Resource, error) {
	if !validResourceType(req.Type) {
		return nil, errors.New("invalid resource type")
	}

	resource := &models.Resource{
		ProjectID:   projectID,
		Name:        req.Name,
		Type:        req.Type,
		URL:         req.URL,
		Description: req.Description,
	}
	if err := s.db.Create(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ProjectService) UpdateResource(id uint, req *ResourceRequest) (*models.Resource, error) {
	if !validResourceType(req.Type) {
		return nil, errors.New("invalid resource type")
	}

	resource, err := s.GetResource(id)
	if err != nil {
		return nil, err
	}

	resource.Name = req.Name
	resource.Type = req.Type
	resource.URL = req.URL
	resource.Description = req.Description
	if err := s.db.Save(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ProjectService) DeleteResource(id uint) error {
	return s.db.Delete(&models.Resource{}, id).Error
}
