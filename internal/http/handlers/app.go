package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"animatify/internal/flows"
	"animatify/internal/infra"
	"animatify/internal/render"
	"animatify/internal/storage"
)

// Renderer is the slice of the render orchestrator the HTTP layer depends on.
type Renderer interface {
	Render(ctx context.Context, prompt string, cfg render.Config) (*render.Result, error)
}

// App bundles the dependencies shared by all handlers.
type App struct {
	Config   *infra.Config
	Logger   infra.Logger
	Flows    flows.Client
	Renderer Renderer
	Store    *storage.ArtifactStore
}

func NewApp(cfg *infra.Config, logger infra.Logger, flowClient flows.Client, renderer Renderer, store *storage.ArtifactStore) *App {
	return &App{
		Config:   cfg,
		Logger:   logger,
		Flows:    flowClient,
		Renderer: renderer,
		Store:    store,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}
