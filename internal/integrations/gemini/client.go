package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"recipe-assistant/internal/domain"
)

// modelsAPI is the subset of *genai.Models used by Client.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client produces structured JSON objects with Gemini models.
type Client struct {
	models modelsAPI
}

// New wraps an existing genai models service.
func New(models modelsAPI) (*Client, error) {
	if models == nil {
		return nil, errors.New("gemini: models api must not be nil")
	}
	return &Client{models: models}, nil
}

// NewFromAPIKey creates a genai client against the Gemini API. An empty key
// lets genai fall back to GEMINI_API_KEY / GOOGLE_API_KEY.
func NewFromAPIKey(ctx context.Context, apiKey string) (*Client, error) {
	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating genai client: %w", err)
	}
	return New(genAI.Models)
}

// GenerateObject returns the JSON object produced for req.
func (c *Client) GenerateObject(ctx context.Context, req domain.ObjectRequest) (domain.RawObject, error) {
	if req.Model == "" {
		return nil, errors.New("gemini: model must not be empty")
	}
	if req.Schema == nil {
		return nil, errors.New("gemini: schema must not be nil")
	}

	conf := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenAISchema(req.Schema),
	}
	if req.System != "" {
		conf.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleModel)
	}
	prompt := req.Prompt
	if prompt == "" {
		prompt = req.System
	}

	res, err := c.models.GenerateContent(ctx, req.Model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, conf)
	if err != nil {
		return nil, fmt.Errorf("gemini: generating content: %w", err)
	}
	text, err := responseText(res)
	if err != nil {
		return nil, err
	}
	raw := domain.RawObject(text)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("gemini: structured response is not valid JSON: %q", text)
	}
	return raw, nil
}

func responseText(res *genai.GenerateContentResponse) (string, error) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: unexpected response from generate ai: %v", res)
	}
	var sb strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		if p == nil {
			continue
		}
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("gemini: empty response from generate ai")
	}
	return text, nil
}

func toGenAISchema(s *domain.Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if s.Nullable {
		out.Nullable = genai.Ptr(true)
	}
	if s.Items != nil {
		out.Items = toGenAISchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toGenAISchema(p)
		}
		out.PropertyOrdering = s.Ordering
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case domain.TypeObject:
		return genai.TypeObject
	case domain.TypeArray:
		return genai.TypeArray
	default:
		return genai.TypeString
	}
}
