package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"animatify/internal/render"
)

type generateRequest struct {
	Prompt string         `json:"prompt"`
	Config *render.Config `json:"config,omitempty"`
}

// generateResponse is the wire shape of POST /api/generate. Code carries the
// synthesized render script: the UI shows it as the generated animation code.
type generateResponse struct {
	Success   bool   `json:"success"`
	VideoPath string `json:"videoPath,omitempty"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Generate runs one render job end to end and blocks until the subprocess
// exits. All failures funnel into {success:false, error} with a non-200
// status.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.json(w, http.StatusBadRequest, generateResponse{Success: false, Error: "invalid payload"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.json(w, http.StatusBadRequest, generateResponse{Success: false, Error: "prompt is required"})
		return
	}

	cfg := render.Config{}
	if req.Config != nil {
		cfg = *req.Config
	}

	res, err := a.Renderer.Render(r.Context(), req.Prompt, cfg)
	if err != nil {
		a.Logger.Error().Err(err).Msg("generate: render failed")
		a.json(w, http.StatusInternalServerError, generateResponse{Success: false, Error: err.Error()})
		return
	}

	a.json(w, http.StatusOK, generateResponse{
		Success:   true,
		VideoPath: res.VideoPath,
		Code:      res.Script,
	})
}
