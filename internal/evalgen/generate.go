// Package evalgen generates labeled synthetic queries for evaluating the
// recipe assistant.
package evalgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"recipe-assistant/internal/domain"
)

// ObjectGenerator produces one JSON object conforming to a schema.
type ObjectGenerator interface {
	GenerateObject(ctx context.Context, req domain.ObjectRequest) (domain.RawObject, error)
}

// Generator runs the remote generation steps against a single model.
type Generator struct {
	objects ObjectGenerator
	model   string
}

func NewGenerator(objects ObjectGenerator, model string) (*Generator, error) {
	if objects == nil {
		return nil, errors.New("evalgen: object generator must not be nil")
	}
	if model == "" {
		return nil, errors.New("evalgen: model must not be empty")
	}
	return &Generator{objects: objects, model: model}, nil
}

// Dimensions asks for n new dimension sets in one call. The model is told to
// avoid the used sets but nothing checks that it did, nor that exactly n
// came back.
func (g *Generator) Dimensions(ctx context.Context, n int, used []domain.Dimensions) ([]domain.Dimensions, error) {
	prompt, err := renderDimensionsPrompt(n, used)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "generating dimensions", "n", n, "used", len(used), "model", g.model)
	raw, err := g.objects.GenerateObject(ctx, domain.ObjectRequest{
		Model:  g.model,
		Name:   "dimensions",
		System: productManagerRole,
		Prompt: prompt,
		Schema: dimensionListSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("evalgen: generate dimensions: %w", err)
	}

	var out struct {
		Dimensions []domain.Dimensions `json:"dimensions"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("evalgen: decode dimensions: %w", err)
	}
	dims := make([]domain.Dimensions, len(out.Dimensions))
	for i, d := range out.Dimensions {
		d = d.Normalize()
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("evalgen: dimensions %d: %w", i+1, err)
		}
		dims[i] = d
	}
	if len(dims) != n {
		slog.WarnContext(ctx, "model returned a different number of dimensions", "requested", n, "got", len(dims))
	}
	return dims, nil
}

// Query writes one query for dims, using examples as few-shot context.
func (g *Generator) Query(ctx context.Context, dims domain.Dimensions, examples []domain.LabeledQuery) (domain.LabeledQuery, error) {
	prompt, err := renderQueryPrompt(dims, examples)
	if err != nil {
		return domain.LabeledQuery{}, err
	}

	raw, err := g.objects.GenerateObject(ctx, domain.ObjectRequest{
		Model:  g.model,
		Name:   "query",
		System: productManagerRole,
		Prompt: prompt,
		Schema: querySchema,
	})
	if err != nil {
		return domain.LabeledQuery{}, fmt.Errorf("evalgen: generate query: %w", err)
	}

	var out struct {
		Query *string `json:"query"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.LabeledQuery{}, fmt.Errorf("evalgen: decode query: %w", err)
	}
	if out.Query == nil {
		return domain.LabeledQuery{}, errors.New("evalgen: decode query: missing query field")
	}
	return domain.LabeledQuery{Dimensions: dims, Query: *out.Query}, nil
}
