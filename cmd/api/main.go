package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"animatify/internal/flows"
	"animatify/internal/genai"
	"animatify/internal/http/handlers"
	"animatify/internal/http/httpapi"
	"animatify/internal/infra"
	"animatify/internal/render"
	"animatify/internal/storage"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	store, err := storage.NewArtifactStore(afero.NewOsFs(), cfg.ProjectRoot)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open artifact store")
	}

	flowClient, err := newFlowClient(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.FlowProvider).Msg("failed to configure flow provider")
	}

	renderer, err := render.NewRenderer(render.Options{
		Store:     store,
		PythonBin: cfg.PythonBin,
		Logger:    &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure renderer")
	}

	app := handlers.NewApp(cfg, logger, flowClient, renderer, store)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func newFlowClient(cfg *infra.Config, logger *infra.Logger) (flows.Client, error) {
	switch cfg.FlowProvider {
	case "openai":
		return flows.NewOpenAIClient(flows.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
	default:
		client, err := genai.NewClient(genai.Options{
			APIKey:     cfg.GeminiAPIKey,
			BaseURL:    cfg.GeminiBaseURL,
			Model:      cfg.GeminiModel,
			ImageModel: cfg.GeminiImageModel,
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
		return flows.NewGeminiClient(client), nil
	}
}
