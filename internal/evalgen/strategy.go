package evalgen

import (
	"context"
	"errors"
	"fmt"

	"recipe-assistant/internal/domain"
)

// QueryWriter produces the labeled query for one set of dimensions.
type QueryWriter interface {
	WriteQuery(ctx context.Context, dims domain.Dimensions, examples []domain.LabeledQuery) (domain.LabeledQuery, error)
}

// Author is an operator who types a query for the dimensions shown to them.
type Author interface {
	AuthorQuery(ctx context.Context, dims domain.Dimensions) (string, error)
}

// QueryWriterFunc adapts a function to QueryWriter.
type QueryWriterFunc func(ctx context.Context, dims domain.Dimensions, examples []domain.LabeledQuery) (domain.LabeledQuery, error)

func (f QueryWriterFunc) WriteQuery(ctx context.Context, dims domain.Dimensions, examples []domain.LabeledQuery) (domain.LabeledQuery, error) {
	return f(ctx, dims, examples)
}

// ManualQueries asks the operator for every query. Examples are not shown.
func ManualQueries(author Author) (QueryWriter, error) {
	if author == nil {
		return nil, errors.New("evalgen: author must not be nil")
	}
	return QueryWriterFunc(func(ctx context.Context, dims domain.Dimensions, _ []domain.LabeledQuery) (domain.LabeledQuery, error) {
		q, err := author.AuthorQuery(ctx, dims)
		if err != nil {
			return domain.LabeledQuery{}, fmt.Errorf("evalgen: read manual query: %w", err)
		}
		return domain.LabeledQuery{Dimensions: dims, Query: q}, nil
	}), nil
}

// GeneratedQueries delegates every query to the model.
func GeneratedQueries(g *Generator) (QueryWriter, error) {
	if g == nil {
		return nil, errors.New("evalgen: generator must not be nil")
	}
	return QueryWriterFunc(g.Query), nil
}
