package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"animatify/internal/http/handlers"
	"animatify/internal/infra"
	"animatify/internal/storage"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := storage.NewArtifactStore(afero.NewMemMapFs(), "/srv/animatify")
	if err != nil {
		t.Fatalf("NewArtifactStore returned error: %v", err)
	}
	app := handlers.NewApp(&infra.Config{}, zerolog.New(io.Discard), nil, nil, store)
	return NewRouter(app)
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRouterVideoRouteWired(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/video", nil))

	// Reaches the handler, which rejects the missing path parameter.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}
