package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"

	"github.com/vbonduro/pantry/internal/classifier"
	claudeclassifier "github.com/vbonduro/pantry/internal/classifier/claude"
	ollamaclassifier "github.com/vbonduro/pantry/internal/classifier/ollama"
	openaiclassifier "github.com/vbonduro/pantry/internal/classifier/openai"
	"github.com/vbonduro/pantry/internal/config"
	"github.com/vbonduro/pantry/internal/db"
	"github.com/vbonduro/pantry/internal/logging"
	"github.com/vbonduro/pantry/internal/recipe"
	clauderecipe "github.com/vbonduro/pantry/internal/recipe/claude"
	geminirecipe "github.com/vbonduro/pantry/internal/recipe/gemini"
	openairecipe "github.com/vbonduro/pantry/internal/recipe/openai"
	"github.com/vbonduro/pantry/internal/service"
	"github.com/vbonduro/pantry/internal/session"
	"github.com/vbonduro/pantry/internal/store"
	firestorestore "github.com/vbonduro/pantry/internal/store/firestore"
	redisstore "github.com/vbonduro/pantry/internal/store/redis"
	"github.com/vbonduro/pantry/internal/web"
	"github.com/vbonduro/pantry/internal/web/templates"
)

const defaultOpenAIRecipeModel = "gpt-4o-mini"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx := context.Background()

	docs, closeStore, err := newDocumentStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open document store", "backend", cfg.StoreBackend, "error", err)
		return
	}
	defer closeStore()

	generator, err := newRecipeGenerator(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize recipe backend", "backend", cfg.RecipeBackend, "error", err)
		return
	}

	cls, err := newClassifier(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize classifier backend", "backend", cfg.ClassifierBackend, "error", err)
		return
	}

	pantryService := service.NewPantryService(docs, cfg.InventoryCollection, cls, logger)
	cache := session.NewRecipeCache(cfg.MaxSessions, cfg.SessionTTL)
	server := web.NewServer(pantryService, generator, cache, templates.FS, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

// newDocumentStore opens the configured backend and returns a func that
// releases it.
func newDocumentStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.DocumentStore, func(), error) {
	switch cfg.StoreBackend {
	case "sqlite":
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite document store", "path", cfg.DBPath)
		return store.NewSQLiteStore(database), closeWithLog(logger, "database", database.Close), nil
	case "file":
		fileStore, err := store.NewFileStore(cfg.FileStorePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using file document store", "path", cfg.FileStorePath)
		return fileStore, func() {}, nil
	case "firestore":
		if cfg.FirestoreProjectID == "" {
			return nil, nil, errors.New("FIRESTORE_PROJECT_ID is required when STORE_BACKEND=firestore")
		}
		fsStore, err := firestorestore.New(ctx, cfg.FirestoreProjectID, cfg.FirestoreDatabase)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using firestore document store", "project", cfg.FirestoreProjectID, "database", cfg.FirestoreDatabase)
		return fsStore, closeWithLog(logger, "firestore client", fsStore.Close), nil
	case "redis":
		rStore, err := redisstore.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis document store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return rStore, closeWithLog(logger, "redis client", rStore.Close), nil
	case "memory":
		logger.Warn("using in-memory document store; inventory is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func newRecipeGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (recipe.Generator, error) {
	switch cfg.RecipeBackend {
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, errors.New("GROQ_API_KEY is required when RECIPE_BACKEND=groq")
		}
		logger.Info("using Groq recipe backend", "model", modelOrDefault(cfg.RecipeModel, openairecipe.DefaultGroqModel))
		return openairecipe.NewGenerator(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.RecipeModel), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required when RECIPE_BACKEND=openai")
		}
		model := modelOrDefault(cfg.RecipeModel, defaultOpenAIRecipeModel)
		logger.Info("using OpenAI recipe backend", "model", model)
		return openairecipe.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, model), nil
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			return nil, errors.New("CLAUDE_API_KEY is required when RECIPE_BACKEND=claude")
		}
		logger.Info("using Claude recipe backend", "model", modelOrDefault(cfg.RecipeModel, clauderecipe.DefaultModel))
		return clauderecipe.NewGenerator(cfg.ClaudeAPIKey, cfg.RecipeModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is required when RECIPE_BACKEND=gemini")
		}
		logger.Info("using Gemini recipe backend", "model", modelOrDefault(cfg.RecipeModel, geminirecipe.DefaultModel))
		return geminirecipe.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.RecipeModel, "")
	default:
		return nil, fmt.Errorf("unknown RECIPE_BACKEND %q", cfg.RecipeBackend)
	}
}

func newClassifier(cfg *config.Config, logger *slog.Logger) (classifier.Classifier, error) {
	switch cfg.ClassifierBackend {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required when CLASSIFIER_BACKEND=openai")
		}
		logger.Info("using OpenAI classifier backend", "model", modelOrDefault(cfg.ClassifierModel, openaiclassifier.DefaultModel))
		return openaiclassifier.NewClassifier(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ClassifierModel), nil
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			return nil, errors.New("CLAUDE_API_KEY is required when CLASSIFIER_BACKEND=claude")
		}
		logger.Info("using Claude classifier backend", "model", modelOrDefault(cfg.ClassifierModel, claudeclassifier.DefaultModel))
		return claudeclassifier.NewClassifier(cfg.ClaudeAPIKey, cfg.ClassifierModel), nil
	case "ollama":
		logger.Info("using Ollama classifier backend", "host", cfg.OllamaHost, "model", modelOrDefault(cfg.ClassifierModel, ollamaclassifier.DefaultModel))
		return ollamaclassifier.NewClassifier(cfg.OllamaHost, cfg.ClassifierModel), nil
	default:
		return nil, fmt.Errorf("unknown CLASSIFIER_BACKEND %q", cfg.ClassifierBackend)
	}
}

func modelOrDefault(model, def string) string {
	if model == "" {
		return def
	}
	return model
}

func closeWithLog(logger *slog.Logger, what string, closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			logger.Error("failed to close "+what, "error", err)
		}
	}
}
