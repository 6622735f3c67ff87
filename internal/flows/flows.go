package flows

import (
	"context"
	"errors"
)

// ErrNoImage reports that the image model answered without any media payload.
// Callers treat this as non-fatal: a failed preview never invalidates a
// successful code generation.
var ErrNoImage = errors.New("flows: image generation returned no media")

// GenerateCodeRequest asks for Manim source matching a natural-language
// animation description.
type GenerateCodeRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateCodeResponse carries the generated Manim source text. The code is
// the model's best effort and is not validated here.
type GenerateCodeResponse struct {
	Code string `json:"code"`
}

// AnnotateCodeRequest asks for explanatory comments on existing code.
type AnnotateCodeRequest struct {
	Code string `json:"code"`
}

// AnnotateCodeResponse carries the commented code. The model is asked to keep
// semantics untouched; the output is passed through unchecked.
type AnnotateCodeResponse struct {
	CommentedCode string `json:"commentedCode"`
}

// PreviewImageRequest asks for a conceptual preview image of the animation.
type PreviewImageRequest struct {
	Prompt string `json:"prompt"`
}

// PreviewImageResponse carries the preview as a data URI
// (data:image/<fmt>;base64,<bytes>).
type PreviewImageResponse struct {
	ImageDataURI string `json:"imageDataUri"`
}

// Client is the contract implemented by all flow providers. Every method is a
// single upstream call: no retries, no caching, no cross-call state.
type Client interface {
	GenerateCode(ctx context.Context, req GenerateCodeRequest) (*GenerateCodeResponse, error)
	AnnotateCode(ctx context.Context, req AnnotateCodeRequest) (*AnnotateCodeResponse, error)
	GeneratePreviewImage(ctx context.Context, req PreviewImageRequest) (*PreviewImageResponse, error)
}
