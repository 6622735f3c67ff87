package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"animatify/internal/flows"
)

// GenerateCode produces Manim source for a natural-language animation prompt.
func (a *App) GenerateCode(w http.ResponseWriter, r *http.Request) {
	var req flows.GenerateCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt is required")
		return
	}

	res, err := a.Flows.GenerateCode(r.Context(), req)
	if err != nil {
		a.Logger.Error().Err(err).Msg("flows: code generation failed")
		a.error(w, http.StatusInternalServerError, "provider_error", err.Error())
		return
	}
	a.json(w, http.StatusOK, res)
}

// AnnotateCode adds explanatory comments to previously generated code. Empty
// input is allowed; what the model does with it is the model's business.
func (a *App) AnnotateCode(w http.ResponseWriter, r *http.Request) {
	var req flows.AnnotateCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	res, err := a.Flows.AnnotateCode(r.Context(), req)
	if err != nil {
		a.Logger.Error().Err(err).Msg("flows: code annotation failed")
		a.error(w, http.StatusInternalServerError, "provider_error", err.Error())
		return
	}
	a.json(w, http.StatusOK, res)
}

// GeneratePreviewImage produces a conceptual preview image for a prompt. A
// missing image payload is reported with its own error code so callers can
// keep a successful code result while dropping only the preview.
func (a *App) GeneratePreviewImage(w http.ResponseWriter, r *http.Request) {
	var req flows.PreviewImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt is required")
		return
	}

	res, err := a.Flows.GeneratePreviewImage(r.Context(), req)
	if err != nil {
		if errors.Is(err, flows.ErrNoImage) {
			a.Logger.Warn().Err(err).Msg("flows: preview returned no media")
			a.error(w, http.StatusBadGateway, "no_image", "image generation failed or returned no media")
			return
		}
		a.Logger.Error().Err(err).Msg("flows: preview generation failed")
		a.error(w, http.StatusInternalServerError, "provider_error", err.Error())
		return
	}
	a.json(w, http.StatusOK, res)
}
