package flows

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIOptions configures the OpenAI-backed flow client.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// OpenAIClient implements the flow contract against the OpenAI API. Text
// flows use chat completions in JSON mode; previews use the image endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(opts OpenAIOptions) (*OpenAIClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if baseURL := strings.TrimRight(opts.BaseURL, "/"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (o *OpenAIClient) GenerateCode(ctx context.Context, req GenerateCodeRequest) (*GenerateCodeResponse, error) {
	text, err := o.complete(ctx, buildCodePrompt(req.Prompt))
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

func (o *OpenAIClient) AnnotateCode(ctx context.Context, req AnnotateCodeRequest) (*AnnotateCodeResponse, error) {
	text, err := o.complete(ctx, buildAnnotatePrompt(req.Code))
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

func (o *OpenAIClient) GeneratePreviewImage(ctx context.Context, req PreviewImageRequest) (*PreviewImageResponse, error) {
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         buildPreviewPrompt(req.Prompt),
		Model:          openai.CreateImageModelDallE3,
		N:              1,
		Size:           openai.CreateImageSize1792x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("generate preview image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, ErrNoImage
	}
	return &PreviewImageResponse{
		ImageDataURI: "data:image/png;base64," + resp.Data[0].B64JSON,
	}, nil
}

func (o *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.5,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Client = (*OpenAIClient)(nil)
