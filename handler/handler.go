package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"recipe-assistant/internal/domain"
	"recipe-assistant/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

type ChatUseCase interface {
	Continue(ctx context.Context, in usecase.ContinueInput) (usecase.ContinueOutput, error)
}

type chatRequest struct {
	ConversationID string               `json:"conversationId"`
	Messages       []domain.ChatMessage `json:"messages"`
}

type chatResponse struct {
	ConversationID string               `json:"conversationId,omitempty"`
	Messages       []domain.ChatMessage `json:"messages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler adapts API Gateway proxy events to the chat use case.
type Handler struct {
	chat ChatUseCase
}

func NewHandler(chat ChatUseCase) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("handler: chat use case must not be nil")
	}
	return &Handler{chat: chat}, nil
}

func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(event.Headers, correlationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	logger := slog.With("correlation_id", correlationID)

	var req chatRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "err", err)
		return errorResult(correlationID, http.StatusBadRequest, usecase.ErrorInvalidInput), nil
	}

	out, err := h.chat.Continue(ctx, usecase.ContinueInput{
		ConversationID: req.ConversationID,
		Messages:       req.Messages,
	})
	if err != nil {
		status, code := classify(err)
		logger.ErrorContext(ctx, "chat turn failed", "err", err, "status", status, "reason", usecase.Reason(err))
		return errorResult(correlationID, status, code), nil
	}

	logger.InfoContext(ctx, "chat turn completed", "conversation_id", out.ConversationID, "messages", len(out.Messages))
	return jsonResult(correlationID, http.StatusOK, chatResponse{
		ConversationID: out.ConversationID,
		Messages:       out.Messages,
	}), nil
}

func classify(err error) (int, usecase.ErrorCode) {
	switch code := usecase.CodeOf(err); code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest, code
	case usecase.ErrorRateLimited:
		return http.StatusTooManyRequests, code
	case usecase.ErrorUpstream:
		return http.StatusBadGateway, code
	default:
		return http.StatusInternalServerError, usecase.ErrorInternal
	}
}

func errorResult(correlationID string, status int, code usecase.ErrorCode) events.APIGatewayProxyResponse {
	return jsonResult(correlationID, status, errorResponse{Error: string(code)})
}

func jsonResult(correlationID string, status int, body any) events.APIGatewayProxyResponse {
	buf, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		buf = []byte(`{"error":"` + string(usecase.ErrorInternal) + `"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(buf),
	}
}

// headerValue looks up a header case-insensitively, as API Gateway forwards
// header names as the client sent them.
func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
