package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"animatify/internal/infra"
	"animatify/internal/storage"
)

const (
	mediaDirName  = "media"
	videosDirName = "videos"
	sceneFileName = "AnimationScene.mp4"
)

// Config is the rendering configuration supplied by the UI. Only Resolution
// influences the render; Duration and BackgroundColor are collected by the
// parameter controls but deliberately not forwarded to the renderer.
type Config struct {
	Resolution      string  `json:"resolution,omitempty"`
	Duration        float64 `json:"duration,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
}

// Result is a completed render job.
type Result struct {
	JobID     string
	VideoPath string
	Script    string
}

// Options configures a Renderer.
type Options struct {
	Store     *storage.ArtifactStore
	PythonBin string
	Logger    *infra.Logger
}

// runFunc executes the interpreter on a script and reports captured stderr,
// the exit code, and a non-nil error only when the process never started.
type runFunc func(ctx context.Context, bin, scriptPath, dir string, env []string) (stderr string, exitCode int, err error)

// Renderer turns a prompt into a video file by synthesizing a scene script
// and running it through the project's Python environment. One render per
// call; concurrent calls are independent because every job owns a
// timestamp-keyed directory and script path.
type Renderer struct {
	store     *storage.ArtifactStore
	pythonBin string
	logger    *infra.Logger

	now func() time.Time
	run runFunc
}

func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Store == nil {
		return nil, errors.New("render: artifact store is required")
	}
	if opts.PythonBin == "" {
		return nil, errors.New("render: python binary path is required")
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		logger = &discard
	}
	return &Renderer{
		store:     opts.Store,
		pythonBin: opts.PythonBin,
		logger:    logger,
		now:       time.Now,
		run:       runPython,
	}, nil
}

// Render executes one job: directories, script, subprocess, postcondition.
// The call blocks until the subprocess exits; the context is the only way to
// bound it.
func (r *Renderer) Render(ctx context.Context, prompt string, cfg Config) (*Result, error) {
	jobID := strconv.FormatInt(r.now().UnixMilli(), 10)
	tag, width, height := quality(cfg.Resolution)

	if cfg.Duration != 0 || cfg.BackgroundColor != "" {
		r.logger.Debug().
			Str("job_id", jobID).
			Float64("duration", cfg.Duration).
			Str("background_color", cfg.BackgroundColor).
			Msg("render: config fields accepted but not forwarded to the renderer")
	}

	jobKey := path.Join(mediaDirName, videosDirName, jobID)
	outputDir, err := r.store.EnsureDir(path.Join(jobKey, tag))
	if err != nil {
		return nil, fmt.Errorf("render: create output directory: %w", err)
	}

	script := buildScript(scriptParams{
		Prompt:      prompt,
		ProjectRoot: filepath.ToSlash(r.store.Root()),
		MediaDir:    filepath.ToSlash(filepath.Join(r.store.Root(), mediaDirName)),
		OutputDir:   filepath.ToSlash(outputDir),
		QualityTag:  tag,
		PixelWidth:  width,
		PixelHeight: height,
	})

	scriptPath, err := r.store.WriteFile(path.Join(jobKey, "scene_"+jobID+".py"), []byte(script))
	if err != nil {
		return nil, fmt.Errorf("render: write scene script: %w", err)
	}

	r.logger.Info().
		Str("job_id", jobID).
		Str("quality", tag).
		Str("scene", sceneLabel(prompt)).
		Msg("render: job started")

	env := append(os.Environ(), "PYTHONPATH="+r.store.Root())
	stderr, exitCode, err := r.run(ctx, r.pythonBin, scriptPath, r.store.Root(), env)
	if err != nil {
		return nil, &StartError{Bin: r.pythonBin, Err: err}
	}
	if exitCode != 0 {
		r.logger.Error().
			Str("job_id", jobID).
			Int("exit_code", exitCode).
			Msg("render: subprocess exited non-zero")
		return nil, &ExitError{Code: exitCode, Stderr: stderr}
	}

	videoKey := path.Join(jobKey, tag, sceneFileName)
	if _, err := r.store.Stat(videoKey); err != nil {
		return nil, &MissingOutputError{Path: videoKey}
	}

	r.logger.Info().
		Str("job_id", jobID).
		Str("video_path", videoKey).
		Msg("render: job complete")

	return &Result{JobID: jobID, VideoPath: videoKey, Script: script}, nil
}

// quality maps a requested resolution onto manim's quality directory tag and
// pixel dimensions. Anything other than 720p gets the 1080p60 profile.
func quality(resolution string) (tag string, width, height int) {
	if resolution == "720p" {
		return "720p30", 1280, 720
	}
	return "1080p60", 1920, 1080
}

func runPython(ctx context.Context, bin, scriptPath, dir string, env []string) (string, int, error) {
	cmd := exec.CommandContext(ctx, bin, scriptPath)
	cmd.Dir = dir
	cmd.Env = env

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stderr.String(), exitErr.ExitCode(), nil
		}
		return stderr.String(), 0, err
	}
	return stderr.String(), 0, nil
}
