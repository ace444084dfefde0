package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/audithub/audithub/internal/config"
	"github.com/audithub/audithub/internal/models"
	"github.com/audithub/audithub/pkg/logger"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// ChatProvider answers one chat turn given a system prompt and the prior
// message history. Implementations must return the assistant reply text.
type ChatProvider interface {
	Chat(ctx context.Context, system string, history []models.PromptMessage) (string, error)
}

// ChatService dispatches chat requests to the configured AI provider.
type ChatService struct {
	config *config.AIConfig
}

func NewChatService(cfg *config.AIConfig) *ChatService {
	return &ChatService{config: cfg}
}

// Chat sends the conversation to the configured provider. Error entries in
// the history are local bookkeeping and never leave the process.
func (s *ChatService) Chat(ctx context.Context, system string, history []models.PromptMessage) (string, error) {
	messages := sendableMessages(history)
	if len(messages) == 0 {
		return "", fmt.Errorf("empty conversation")
	}

	logger.Debug().
		Str("provider", s.config.Provider).
		Str("model", s.config.Model).
		Int("messages", len(messages)).
		Msg("chat request")

	switch s.config.Provider {
	case "openai":
		return s.chatOpenAI(ctx, system, messages)
	case "ollama":
		return s.chatOllama(ctx, system, messages)
	case "gemini":
		return s.chatGemini(ctx, system, messages)
	default:
		// anthropic is the default provider
		return s.chatAnthropic(ctx, system, messages)
	}
}

// sendableMessages filters out error entries; providers only understand
// user and assistant roles.
func sendableMessages(history []models.PromptMessage) []models.PromptMessage {
	messages := make([]models.PromptMessage, 0, len(history))
	for _, m := range history {
		if m.Role == models.PromptRoleUser || m.Role == models.PromptRoleAssistant {
			messages = append(messages, m)
		}
	}
	return messages
}

func (s *ChatService) chatAnthropic(ctx context.Context, system string, messages []models.PromptMessage) (string, error) {
	opts := []option.RequestOption{option.WithAPIKey(s.config.APIKey)}
	if s.config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.config.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	model := s.config.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 4096,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	for _, m := range messages {
		if m.Role == models.PromptRoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	return content, nil
}

func (s *ChatService) chatOpenAI(ctx context.Context, system string, messages []models.PromptMessage) (string, error) {
	clientConfig := openai.DefaultConfig(s.config.APIKey)
	if s.config.BaseURL != "" {
		clientConfig.BaseURL = s.config.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	model := s.config.Model
	if model == "" {
		model = openai.GPT4o
	}

	var chatMessages []openai.ChatCompletionMessage
	if system != "" {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == models.PromptRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: chatMessages,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

func (s *ChatService) chatOllama(ctx context.Context, system string, messages []models.PromptMessage) (string, error) {
	baseURL := s.config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := s.config.Model
	if model == "" {
		model = "llama3"
	}

	var chatMessages []api.Message
	if system != "" {
		chatMessages = append(chatMessages, api.Message{Role: "system", Content: system})
	}
	for _, m := range messages {
		chatMessages = append(chatMessages, api.Message{Role: m.Role, Content: m.Content})
	}

	stream := false
	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model:    model,
		Messages: chatMessages,
		Stream:   &stream,
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}

	return content.String(), nil
}

func (s *ChatService) chatGemini(ctx context.Context, system string, messages []models.PromptMessage) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.config.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := s.config.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	var contents []*genai.Content
	for _, m := range messages {
		var role genai.Role = genai.RoleUser
		if m.Role == models.PromptRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return resp.Text(), nil
}
