package evalgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"recipe-assistant/internal/domain"
	"recipe-assistant/internal/evalset"
)

// Operator is the person at the console: they review items and, in manual
// mode, type queries.
type Operator interface {
	Decider
	Author
}

// Options mirrors the generator's command-line flags.
type Options struct {
	N             int
	Manual        bool
	VerifyDims    bool
	VerifyQueries bool
	ExamplesPath  string
	OutputPath    string
}

// Pipeline runs one generation batch end to end.
type Pipeline struct {
	gen      *Generator
	operator Operator
	out      io.Writer
}

func NewPipeline(gen *Generator, operator Operator, out io.Writer) (*Pipeline, error) {
	if gen == nil {
		return nil, errors.New("evalgen: generator must not be nil")
	}
	if operator == nil {
		return nil, errors.New("evalgen: operator must not be nil")
	}
	if out == nil {
		return nil, errors.New("evalgen: output writer must not be nil")
	}
	return &Pipeline{gen: gen, operator: operator, out: out}, nil
}

// Run loads examples, generates dimensions and queries with the optional
// review gates, writes the output file if requested and prints every query.
// Query review is skipped in manual mode.
func (p *Pipeline) Run(ctx context.Context, opts Options) ([]domain.LabeledQuery, error) {
	if opts.N < 0 {
		return nil, fmt.Errorf("evalgen: n must not be negative, got %d", opts.N)
	}

	examples, err := evalset.Load(opts.ExamplesPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "Loaded %d examples\n", len(examples))

	used := make([]domain.Dimensions, len(examples))
	for i, e := range examples {
		used[i] = e.Dimensions
	}
	dims, err := p.gen.Dimensions(ctx, opts.N, used)
	if err != nil {
		return nil, err
	}
	if opts.VerifyDims {
		if dims, err = Review(ctx, p.operator, dims); err != nil {
			return nil, err
		}
	}

	writer, err := p.queryWriter(opts.Manual)
	if err != nil {
		return nil, err
	}
	queries := make([]domain.LabeledQuery, 0, len(dims))
	for _, d := range dims {
		q, err := writer.WriteQuery(ctx, d, examples)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	if !opts.Manual && opts.VerifyQueries {
		if queries, err = Review(ctx, p.operator, queries); err != nil {
			return nil, err
		}
	}
	fmt.Fprintf(p.out, "Generated %d queries\n", len(queries))

	if opts.OutputPath != "" {
		if err := evalset.WriteFile(opts.OutputPath, queries); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "wrote queries", "path", opts.OutputPath, "count", len(queries))
	}
	for _, q := range queries {
		fmt.Fprintf(p.out, "%s\n%s\n\n", q.Dimensions.JSON(), q.Query)
	}
	return queries, nil
}

func (p *Pipeline) queryWriter(manual bool) (QueryWriter, error) {
	if manual {
		return ManualQueries(p.operator)
	}
	return GeneratedQueries(p.gen)
}
