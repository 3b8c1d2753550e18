package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"

	"recipe-assistant/handler"
	"recipe-assistant/internal/integrations/openai"
	"recipe-assistant/internal/integrations/paramstore"
	"recipe-assistant/internal/repository"
	"recipe-assistant/internal/usecase"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	// ---- Configuration (read only here) ----
	modelName := envString("MODEL_NAME", usecase.DefaultModel)
	baseURL := os.Getenv("OPENAI_BASE_URL")
	apiKey := os.Getenv("OPENAI_API_KEY")
	paramPrefix := os.Getenv("PARAM_PREFIX")
	stateTable := os.Getenv("STATE_TABLE")
	timeout := time.Duration(envInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second

	if apiKey == "" && paramPrefix == "" {
		slog.Error("one of OPENAI_API_KEY or PARAM_PREFIX must be set")
		os.Exit(1)
	}

	// ---- AWS SDK config (only when a table or param store is used) ----
	var cfg aws.Config
	if stateTable != "" || apiKey == "" {
		var err error
		cfg, err = config.LoadDefaultConfig(ctx)
		if err != nil {
			slog.Error("failed to load AWS config", "err", err)
			os.Exit(1)
		}
	}

	// ---- Clients ----
	opts := []openai.Option{
		openai.WithBaseURL(baseURL),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if apiKey != "" {
		opts = append(opts, openai.WithAPIKey(apiKey))
	} else {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg), paramPrefix)
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		opts = append(opts, openai.WithParamStore(ssmClient, paramPrefix))
	}
	openaiClient, err := openai.NewClient(opts...)
	if err != nil {
		slog.Error("failed to create OpenAI client", "err", err)
		os.Exit(1)
	}

	var store usecase.HistoryStore
	if stateTable != "" {
		stateClient, err := repository.New(awsdynamodb.NewFromConfig(cfg), stateTable)
		if err != nil {
			slog.Error("failed to create state client", "err", err)
			os.Exit(1)
		}
		store = stateClient
	} else {
		slog.Info("STATE_TABLE not set, conversation history is not persisted")
	}

	// ---- Handler ----
	chatService, err := usecase.NewChatService(openaiClient, store, modelName)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(chatService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
