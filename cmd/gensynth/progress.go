package main

import (
	"context"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"recipe-assistant/internal/domain"
	"recipe-assistant/internal/evalgen"
)

// spinningGenerator shows a spinner on stderr while a remote call is in
// flight. stdout stays reserved for prompts and results.
type spinningGenerator struct {
	next    evalgen.ObjectGenerator
	spinner *spinner.Spinner
}

func withSpinner(next evalgen.ObjectGenerator) evalgen.ObjectGenerator {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	return &spinningGenerator{next: next, spinner: s}
}

func (g *spinningGenerator) GenerateObject(ctx context.Context, req domain.ObjectRequest) (domain.RawObject, error) {
	g.spinner.Suffix = " generating " + req.Name
	g.spinner.Start()
	defer g.spinner.Stop()
	return g.next.GenerateObject(ctx, req)
}
