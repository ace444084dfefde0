package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/audithub/audithub/internal/models"
)

// stubProvider answers every chat turn with a fixed reply or failure.
type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Chat(ctx context.Context, system string, history []models.PromptMessage) (string, error) {
	return s.reply, s.err
}

func TestSubmitMessage_AppendsUserAndAssistant(t *testing.T) {
	db := newTestDB(t)
	row := seedAuditCriterion(t, db)
	service := NewPromptService(db, &stubProvider{reply: "enable TLS everywhere"})

	prompt, err := service.Create(row.ID, &CreatePromptRequest{Name: "TLS questions"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := service.SubmitMessage(context.Background(), prompt.ID, &SubmitMessageRequest{
		Content: "is TLS required?",
	})
	if err != nil {
		t.Fatalf("SubmitMessage failed: %v", err)
	}

	history := result.MessageHistory()
	if len(history) != 2 {
		t.Fatalf("got %d history entries, expected 2", len(history))
	}
	if history[0].Role != models.PromptRoleUser || history[0].Content != "is TLS required?" {
		t.Errorf("first entry = %+v, expected the user message", history[0])
	}
	if history[1].Role != models.PromptRoleAssistant || history[1].Content != "enable TLS everywhere" {
		t.Errorf("second entry = %+v, expected the assistant reply", history[1])
	}
}

func TestSubmitMessage_ProviderFailureKeepsUserMessage(t *testing.T) {
	db := newTestDB(t)
	row := seedAuditCriterion(t, db)
	service := NewPromptService(db, &stubProvider{err: errors.New("model overloaded")})

	prompt, err := service.Create(row.ID, &CreatePromptRequest{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := service.SubmitMessage(context.Background(), prompt.ID, &SubmitMessageRequest{
		Content: "is TLS required?",
	})
	if err != nil {
		t.Fatalf("SubmitMessage should not fail on a provider error, got %v", err)
	}

	// The user's input and the failure must both be persisted
	var stored models.Prompt
	if err := db.First(&stored, result.ID).Error; err != nil {
		t.Fatalf("failed to reload prompt: %v", err)
	}

	history := stored.MessageHistory()
	if len(history) != 2 {
		t.Fatalf("got %d persisted entries, expected 2", len(history))
	}
	if history[0].Role != models.PromptRoleUser || history[0].Content != "is TLS required?" {
		t.Errorf("first entry = %+v, expected the user message", history[0])
	}
	if history[1].Role != models.PromptRoleError {
		t.Errorf("second entry role = %q, expected %q", history[1].Role, models.PromptRoleError)
	}
	if !strings.Contains(history[1].Content, "model overloaded") {
		t.Errorf("error entry %q should contain the provider failure text", history[1].Content)
	}
}

func TestSubmitMessage_FailureThenSuccessGrowsHistory(t *testing.T) {
	db := newTestDB(t)
	row := seedAuditCriterion(t, db)

	provider := &stubProvider{err: errors.New("timeout")}
	service := NewPromptService(db, provider)

	prompt, err := service.Create(row.ID, &CreatePromptRequest{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := service.SubmitMessage(context.Background(), prompt.ID, &SubmitMessageRequest{Content: "first"}); err != nil {
		t.Fatalf("SubmitMessage failed: %v", err)
	}

	provider.err = nil
	provider.reply = "answer"
	result, err := service.SubmitMessage(context.Background(), prompt.ID, &SubmitMessageRequest{Content: "second"})
	if err != nil {
		t.Fatalf("SubmitMessage failed: %v", err)
	}

	history := result.MessageHistory()
	roles := make([]string, len(history))
	for i, m := range history {
		roles[i] = m.Role
	}
	expected := []string{
		models.PromptRoleUser, models.PromptRoleError,
		models.PromptRoleUser, models.PromptRoleAssistant,
	}
	if len(roles) != len(expected) {
		t.Fatalf("got roles %v, expected %v", roles, expected)
	}
	for i := range expected {
		if roles[i] != expected[i] {
			t.Fatalf("got roles %v, expected %v", roles, expected)
		}
	}
}

func TestCreatePrompt_Defaults(t *testing.T) {
	db := newTestDB(t)
	row := seedAuditCriterion(t, db)
	service := NewPromptService(db, &stubProvider{})

	prompt, err := service.Create(row.ID, &CreatePromptRequest{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if prompt.Name != "New chat" {
		t.Errorf("Name = %q, expected the default", prompt.Name)
	}
	if prompt.SessionID == "" {
		t.Error("SessionID should be assigned on creation")
	}
}
