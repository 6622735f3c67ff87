package flows

import (
	"context"
	"errors"
	"fmt"

	"animatify/internal/genai"
)

// GeminiClient implements the flow contract on top of the Gemini
// generateContent API.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(client *genai.Client) *GeminiClient {
	return &GeminiClient{client: client}
}

func (g *GeminiClient) GenerateCode(ctx context.Context, req GenerateCodeRequest) (*GenerateCodeResponse, error) {
	text, err := g.client.GenerateJSON(ctx, buildCodePrompt(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}
	parsed, err := parseModelPayload[codePayload](text)
	if err != nil {
		return nil, fmt.Errorf("generate code: parse model payload: %w", err)
	}
	if parsed.Code == "" {
		return nil, errors.New("generate code: model response missing code field")
	}
	return &GenerateCodeResponse{Code: parsed.Code}, nil
}

func (g *GeminiClient) AnnotateCode(ctx context.Context, req AnnotateCodeRequest) (*AnnotateCodeResponse, error) {
	text, err := g.client.GenerateJSON(ctx, buildAnnotatePrompt(req.Code))
	if err != nil {
		return nil, fmt.Errorf("annotate code: %w", err)
	}
	parsed, err := parseModelPayload[commentedCodePayload](text)
	if err != nil {
		return nil, fmt.Errorf("annotate code: parse model payload: %w", err)
	}
	if parsed.CommentedCode == "" {
		return nil, errors.New("annotate code: model response missing commentedCode field")
	}
	return &AnnotateCodeResponse{CommentedCode: parsed.CommentedCode}, nil
}

func (g *GeminiClient) GeneratePreviewImage(ctx context.Context, req PreviewImageRequest) (*PreviewImageResponse, error) {
	img, err := g.client.GenerateImage(ctx, buildPreviewPrompt(req.Prompt))
	if err != nil {
		if errors.Is(err, genai.ErrNoMedia) {
			return nil, ErrNoImage
		}
		return nil, fmt.Errorf("generate preview image: %w", err)
	}
	return &PreviewImageResponse{ImageDataURI: img.DataURI()}, nil
}

var _ Client = (*GeminiClient)(nil)
