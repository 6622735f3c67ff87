package flows

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type codePayload struct {
	Code string `json:"code"`
}

type commentedCodePayload struct {
	CommentedCode string `json:"commentedCode"`
}

func buildCodePrompt(prompt string) string {
	sb := &strings.Builder{}
	sb.WriteString("You are an expert in Manim, a Python library for creating mathematical animations. ")
	sb.WriteString("Given a natural language prompt describing a 2D animation, generate the corresponding Python code using Manim. ")
	sb.WriteString("The code should be well-formatted, efficient, well-structured and easy to understand. ")
	sb.WriteString("Use descriptive variable names and best practices. Include comments only where they help readability. ")
	sb.WriteString(`Respond strictly with JSON matching this schema: {"code":string}. `)
	fmt.Fprintf(sb, "Here is the prompt: %q", prompt)
	return sb.String()
}

func buildAnnotatePrompt(code string) string {
	sb := &strings.Builder{}
	sb.WriteString("You are a Python coding expert. You will receive Python code and add comments to it to improve readability. ")
	sb.WriteString("Only add comments if they significantly improve understanding of the code. Do not change what the code does. ")
	sb.WriteString(`Respond strictly with JSON matching this schema: {"commentedCode":string}. `)
	sb.WriteString("Code:\n")
	sb.WriteString(code)
	return sb.String()
}

func buildPreviewPrompt(prompt string) string {
	return fmt.Sprintf("Generate a conceptual image that visually represents the key elements of this animation idea: %q. "+
		"The image should be suitable as a preview. Focus on a single, impactful frame or concept. "+
		"Cinematic, visually appealing, 16:9 aspect ratio.", prompt)
}

func parseModelPayload[T any](raw string) (T, error) {
	var zero T
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return zero, errors.New("empty payload")
	}
	var decoded T
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return zero, err
	}
	return decoded, nil
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
