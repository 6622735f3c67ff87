package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient(Options{
		APIKey:     "dummy",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestGenerateJSONExtractsCandidateText(t *testing.T) {
	var gotPath, gotKey string
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"{\"code\":\"pass\"}"}]}}]}`), nil
	})

	text, err := client.GenerateJSON(context.Background(), "make an animation")
	if err != nil {
		t.Fatalf("GenerateJSON returned error: %v", err)
	}
	if text != `{"code":"pass"}` {
		t.Fatalf("text = %q", text)
	}
	if !strings.HasSuffix(gotPath, "/models/gemini-1.5-flash:generateContent") {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "dummy" {
		t.Fatalf("api key header = %q", gotKey)
	}
}

func TestGenerateJSONSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exhausted"}}`), nil
	})

	_, err := client.GenerateJSON(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "quota exhausted") {
		t.Fatalf("err = %v, want quota message", err)
	}
}

func TestGenerateJSONEmptyCandidatesFails(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[]}`), nil
	})

	if _, err := client.GenerateJSON(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestGenerateImageDecodesInlineData(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash-exp:generateContent") {
			t.Fatalf("path = %q", r.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"here"},{"inlineData":{"mimeType":"image/png","data":"`+raw+`"}}]}}]}`), nil
	})

	img, err := client.GenerateImage(context.Background(), "a red circle")
	if err != nil {
		t.Fatalf("GenerateImage returned error: %v", err)
	}
	if string(img.Data) != "png-bytes" || img.MIME != "image/png" {
		t.Fatalf("image = %+v", img)
	}
	if !strings.HasPrefix(img.DataURI(), "data:image/png;base64,") {
		t.Fatalf("DataURI = %q", img.DataURI())
	}
}

func TestGenerateImageNoMediaIsDistinct(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"sorry, no image"}]}}]}`), nil
	})

	_, err := client.GenerateImage(context.Background(), "prompt")
	if !errors.Is(err, ErrNoMedia) {
		t.Fatalf("err = %v, want ErrNoMedia", err)
	}
}
