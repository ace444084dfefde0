package services

import (
	"github.com/audithub/audithub/internal/models"
	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type CommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (s *CommentService) ListForCriterion(criterionRowID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Preload("User").
		Where("project_audit_criterion_id = ?", criterionRowID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentService) Get(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Create(criterionRowID, userID uint, req *CommentRequest) (*models.Comment, error) {
	comment := &models.Comment{
		ProjectAuditCriterionID: criterionRowID,
		UserID:                  userID,
		Body:                    req.Body,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return s.Get(comment.ID)
}

func (s *CommentService) Update(id uint, req *CommentRequest) (*models.Comment, error) {
	comment, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	comment.Body = req.Body
	if err := s.db.Save(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(id uint) error {
	return s.db.Delete(&models.Comment{}, id).Error
}
