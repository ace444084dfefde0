package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/audithub/audithub/internal/models"
	"github.com/audithub/audithub/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromptService manages AI chat sessions attached to audit criteria.
type PromptService struct {
	db   *gorm.DB
	chat ChatProvider
}

func NewPromptService(db *gorm.DB, chat ChatProvider) *PromptService {
	return &PromptService{db: db, chat: chat}
}

func (s *PromptService) ListForCriterion(criterionRowID uint) ([]models.Prompt, error) {
	var prompts []models.Prompt
	if err := s.db.Where("project_audit_criterion_id = ?", criterionRowID).
		Order("created_at DESC").
		Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

func (s *PromptService) Get(id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := s.db.First(&prompt, id).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

type CreatePromptRequest struct {
	Name string `json:"name" binding:"max=255"`
}

func (s *PromptService) Create(criterionRowID uint, req *CreatePromptRequest) (*models.Prompt, error) {
	name := req.Name
	if name == "" {
		name = "New chat"
	}

	prompt := &models.Prompt{
		SessionID:               uuid.NewString(),
		ProjectAuditCriterionID: criterionRowID,
		Name:                    name,
	}
	if err := s.db.Create(prompt).Error; err != nil {
		return nil, err
	}
	return prompt, nil
}

func (s *PromptService) Delete(id uint) error {
	return s.db.Delete(&models.Prompt{}, id).Error
}

type SubmitMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SubmitMessage appends the user's message, asks the provider for a reply,
// and persists the outcome. The user's input is never lost: a provider
// failure is recorded as an error entry in the history instead of being
// reported as a request failure.
func (s *PromptService) SubmitMessage(ctx context.Context, id uint, req *SubmitMessageRequest) (*models.Prompt, error) {
	prompt, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	history := prompt.MessageHistory()
	history = append(history, models.PromptMessage{
		Role:    models.PromptRoleUser,
		Content: req.Content,
	})

	system, err := s.buildSystemPrompt(prompt.ProjectAuditCriterionID)
	if err != nil {
		return nil, err
	}

	reply, chatErr := s.chat.Chat(ctx, system, history)
	if chatErr != nil {
		logger.Error().Err(chatErr).Uint("prompt_id", id).Msg("chat provider failed")
		history = append(history, models.PromptMessage{
			Role:    models.PromptRoleError,
			Content: chatErr.Error(),
		})
	} else {
		history = append(history, models.PromptMessage{
			Role:    models.PromptRoleAssistant,
			Content: reply,
		})
	}

	if err := prompt.SetMessageHistory(history); err != nil {
		return nil, err
	}
	if err := s.db.Save(prompt).Error; err != nil {
		return nil, err
	}

	return prompt, nil
}

// buildSystemPrompt assembles the assistant's context from the criterion
// under discussion and the project's registered resources.
func (s *PromptService) buildSystemPrompt(criterionRowID uint) (string, error) {
	var row models.ProjectAuditCriterion
	if err := s.db.Preload("Criterion.Tags").
		Preload("ProjectAudit.Project").
		First(&row, criterionRowID).Error; err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a compliance audit assistant. ")
	b.WriteString("Help the auditor assess the following criterion and suggest concrete steps toward compliance.\n\n")

	if c := row.Criterion; c != nil {
		fmt.Fprintf(&b, "Criterion %s: %s\n", c.PublicID, c.Name)
		if c.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", c.Description)
		}
		if len(c.Tags) > 0 {
			names := make([]string, 0, len(c.Tags))
			for _, t := range c.Tags {
				names = append(names, t.Name)
			}
			fmt.Fprintf(&b, "Tags: %s\n", strings.Join(names, ", "))
		}
	}

	if audit := row.ProjectAudit; audit != nil && audit.Project != nil {
		project := audit.Project
		fmt.Fprintf(&b, "\nProject: %s\n", project.Name)
		if project.Description != "" {
			fmt.Fprintf(&b, "Project description: %s\n", project.Description)
		}

		var resources []models.Resource
		if err := s.db.Where("project_id = ?", project.ID).Find(&resources).Error; err == nil && len(resources) > 0 {
			b.WriteString("\nProject resources:\n")
			for _, r := range resources {
				fmt.Fprintf(&b, "- %s (%s): %s\n", r.Name, r.Type, r.URL)
			}
		}
	}

	fmt.Fprintf(&b, "\nCurrent compliance status: %s\n", row.Status)

	return b.String(), nil
}
