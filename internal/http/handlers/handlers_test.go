package handlers

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"animatify/internal/flows"
	"animatify/internal/infra"
	"animatify/internal/render"
	"animatify/internal/storage"
)

type fakeFlowClient struct {
	generateCode func(context.Context, flows.GenerateCodeRequest) (*flows.GenerateCodeResponse, error)
	annotateCode func(context.Context, flows.AnnotateCodeRequest) (*flows.AnnotateCodeResponse, error)
	previewImage func(context.Context, flows.PreviewImageRequest) (*flows.PreviewImageResponse, error)
}

func (f fakeFlowClient) GenerateCode(ctx context.Context, req flows.GenerateCodeRequest) (*flows.GenerateCodeResponse, error) {
	if f.generateCode != nil {
		return f.generateCode(ctx, req)
	}
	return nil, errors.New("generateCode not implemented")
}

func (f fakeFlowClient) AnnotateCode(ctx context.Context, req flows.AnnotateCodeRequest) (*flows.AnnotateCodeResponse, error) {
	if f.annotateCode != nil {
		return f.annotateCode(ctx, req)
	}
	return nil, errors.New("annotateCode not implemented")
}

func (f fakeFlowClient) GeneratePreviewImage(ctx context.Context, req flows.PreviewImageRequest) (*flows.PreviewImageResponse, error) {
	if f.previewImage != nil {
		return f.previewImage(ctx, req)
	}
	return nil, errors.New("previewImage not implemented")
}

type fakeRenderer struct {
	render func(context.Context, string, render.Config) (*render.Result, error)
}

func (f fakeRenderer) Render(ctx context.Context, prompt string, cfg render.Config) (*render.Result, error) {
	if f.render != nil {
		return f.render(ctx, prompt, cfg)
	}
	return nil, errors.New("render not implemented")
}

func newTestApp(t *testing.T, flowClient flows.Client, renderer Renderer) (*App, *storage.ArtifactStore) {
	t.Helper()
	store, err := storage.NewArtifactStore(afero.NewMemMapFs(), "/srv/animatify")
	if err != nil {
		t.Fatalf("NewArtifactStore returned error: %v", err)
	}
	app := NewApp(&infra.Config{}, zerolog.New(io.Discard), flowClient, renderer, store)
	return app, store
}
