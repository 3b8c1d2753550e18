package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"recipe-assistant/internal/domain"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gpt-3.5-turbo"

type LLMClient interface {
	Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error)
}

// HistoryStore persists conversations between turns. Messages are addressed
// by their zero-based position in the conversation.
type HistoryStore interface {
	GetHistory(ctx context.Context, conversationID string) ([]domain.ChatMessage, error)
	AppendMessages(ctx context.Context, conversationID string, offset int, msgs []domain.ChatMessage) error
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

type ChatService struct {
	llm   LLMClient
	store HistoryStore
	model string
}

type ContinueInput struct {
	ConversationID string
	Messages       []domain.ChatMessage
}

type ContinueOutput struct {
	ConversationID string
	Messages       []domain.ChatMessage
}

// NewChatService builds a ChatService. store may be nil, in which case the
// caller owns the history and Continue is a plain passthrough to Respond.
func NewChatService(llm LLMClient, store HistoryStore, model string) (*ChatService, error) {
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return &ChatService{llm: llm, store: store, model: model}, nil
}

// Respond makes sure history starts with the system prompt, sends it to the
// model and returns it with the trimmed assistant reply appended. An empty
// history is accepted. Remote failures are returned without retry.
func (s *ChatService) Respond(ctx context.Context, history []domain.ChatMessage) ([]domain.ChatMessage, error) {
	messages := withSystemPrompt(history)

	reply, err := s.llm.Chat(ctx, s.model, messages)
	if err != nil {
		if status, ok := upstreamStatusCode(err); ok && status == 429 {
			return nil, newError(ErrorRateLimited, "llm_rate_limited", err)
		}
		return nil, newError(ErrorUpstream, "llm_error", err)
	}

	return append(messages, domain.ChatMessage{
		Role:    domain.RoleAssistant,
		Content: strings.TrimSpace(reply),
	}), nil
}

// Continue runs one turn of a conversation. With a store configured the
// stored history is prepended to in.Messages and everything new, including
// the reply, is persisted after the model answers.
func (s *ChatService) Continue(ctx context.Context, in ContinueInput) (ContinueOutput, error) {
	for _, m := range in.Messages {
		if !domain.ValidRole(m.Role) {
			return ContinueOutput{}, newError(ErrorInvalidInput, "invalid_role", fmt.Errorf("role %q", m.Role))
		}
	}

	convID := strings.TrimSpace(in.ConversationID)
	if s.store == nil {
		updated, err := s.Respond(ctx, in.Messages)
		if err != nil {
			return ContinueOutput{}, err
		}
		return ContinueOutput{ConversationID: convID, Messages: updated}, nil
	}

	var stored []domain.ChatMessage
	if convID == "" {
		convID = newUUID()
	} else {
		history, err := s.store.GetHistory(ctx, convID)
		if err != nil {
			return ContinueOutput{}, newError(ErrorInternal, "history_read_error", err)
		}
		stored = history
	}

	combined := make([]domain.ChatMessage, 0, len(stored)+len(in.Messages))
	combined = append(combined, stored...)
	combined = append(combined, in.Messages...)

	updated, err := s.Respond(ctx, combined)
	if err != nil {
		return ContinueOutput{}, err
	}

	if err := s.store.AppendMessages(ctx, convID, len(stored), updated[len(stored):]); err != nil {
		return ContinueOutput{}, newError(ErrorInternal, "history_write_error", err)
	}

	return ContinueOutput{ConversationID: convID, Messages: updated}, nil
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}

var newUUID = func() string {
	return uuid.NewString()
}
