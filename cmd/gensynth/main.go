package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"

	"recipe-assistant/internal/console"
	"recipe-assistant/internal/evalgen"
	"recipe-assistant/internal/integrations/gemini"
	"recipe-assistant/internal/integrations/openai"
	"recipe-assistant/internal/integrations/paramstore"
)

const (
	providerGemini = "gemini"
	providerOpenAI = "openai"

	defaultGeminiModel = "gemini-2.5-flash-preview-05-20"
	defaultOpenAIModel = "gpt-4o-mini"
)

func main() {
	var opts evalgen.Options
	flag.IntVar(&opts.N, "n", 10, "number of dimension sets to generate")
	flag.BoolVar(&opts.Manual, "manual", false, "type every query by hand instead of generating it")
	flag.BoolVar(&opts.VerifyDims, "verify-dims", false, "review generated dimensions before writing queries")
	flag.BoolVar(&opts.VerifyQueries, "verify-queries", false, "review generated queries (ignored with -manual)")
	flag.StringVar(&opts.ExamplesPath, "examples", "", "CSV file of labeled queries used as few-shot examples")
	flag.StringVar(&opts.OutputPath, "output", "", "CSV file to write the labeled queries to")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	ctx := context.Background()
	if err := run(ctx, opts); err != nil {
		slog.Error("generation failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts evalgen.Options) error {
	// ---- Configuration (read only here) ----
	provider := envString("GEN_PROVIDER", providerGemini)
	paramPrefix := os.Getenv("PARAM_PREFIX")

	objects, defaultModel, err := newObjectGenerator(ctx, provider, paramPrefix)
	if err != nil {
		return err
	}
	modelName := envString("GEN_MODEL_NAME", defaultModel)

	gen, err := evalgen.NewGenerator(withSpinner(objects), modelName)
	if err != nil {
		return err
	}
	pipeline, err := evalgen.NewPipeline(gen, console.NewTerminal(os.Stdin, os.Stdout), os.Stdout)
	if err != nil {
		return err
	}
	_, err = pipeline.Run(ctx, opts)
	return err
}

func newObjectGenerator(ctx context.Context, provider, paramPrefix string) (evalgen.ObjectGenerator, string, error) {
	switch provider {
	case providerGemini:
		// An empty key lets genai read GEMINI_API_KEY or GOOGLE_API_KEY.
		apiKey := ""
		if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" && paramPrefix != "" {
			ps, err := newParamStore(ctx, paramPrefix)
			if err != nil {
				return nil, "", err
			}
			if apiKey, err = ps.Token(ctx, "gemini-token"); err != nil {
				return nil, "", err
			}
		}
		client, err := gemini.NewFromAPIKey(ctx, apiKey)
		if err != nil {
			return nil, "", err
		}
		return client, defaultGeminiModel, nil

	case providerOpenAI:
		opts := []openai.Option{openai.WithBaseURL(os.Getenv("OPENAI_BASE_URL"))}
		if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
			opts = append(opts, openai.WithAPIKey(apiKey))
		} else if paramPrefix != "" {
			ps, err := newParamStore(ctx, paramPrefix)
			if err != nil {
				return nil, "", err
			}
			opts = append(opts, openai.WithParamStore(ps, paramPrefix))
		}
		client, err := openai.NewClient(opts...)
		if err != nil {
			return nil, "", err
		}
		return client, defaultOpenAIModel, nil

	default:
		return nil, "", fmt.Errorf("unknown GEN_PROVIDER %q (want %q or %q)", provider, providerGemini, providerOpenAI)
	}
}

func newParamStore(ctx context.Context, prefix string) (*paramstore.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return paramstore.New(awsssm.NewFromConfig(cfg), prefix)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
