package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"animatify/internal/storage"
)

func videoRequest(key, rangeHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/video?path="+url.QueryEscape(key), nil)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	return req
}

func seedVideo(t *testing.T, store *storage.ArtifactStore, key string, size int) []byte {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	_, err := store.WriteFile(key, data)
	require.NoError(t, err)
	return data
}

func TestVideoRequiresPath(t *testing.T) {
	app, _ := newTestApp(t, fakeFlowClient{}, fakeRenderer{})

	rec := httptest.NewRecorder()
	app.Video(rec, httptest.NewRequest(http.MethodGet, "/api/video", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVideoRejectsTraversal(t *testing.T) {
	app, store := newTestApp(t, fakeFlowClient{}, fakeRenderer{})
	seedVideo(t, store, "media/videos/1/720p30/AnimationScene.mp4", 100)

	rec := httptest.NewRecorder()
	app.Video(rec, videoRequest("../../etc/passwd", ""))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NotContains(t, rec.Body.String(), "root:")
}

func TestVideoMissingFileIs500(t *testing.T) {
	app, _ := newTestApp(t, fakeFlowClient{}, fakeRenderer{})

	rec := httptest.NewRecorder()
	app.Video(rec, videoRequest("media/videos/nope.mp4", ""))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVideoFullBody(t *testing.T) {
	app, store := newTestApp(t, fakeFlowClient{}, fakeRenderer{})
	data := seedVideo(t, store, "media/videos/1/720p30/AnimationScene.mp4", 1000)

	rec := httptest.NewRecorder()
	app.Video(rec, videoRequest("media/videos/1/720p30/AnimationScene.mp4", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1000", rec.Header().Get("Content-Length"))
	require.Equal(t, "video/mp4", rec.Header().Get("Content-Type"))
	require.Equal(t, data, rec.Body.Bytes())
}

func TestVideoRangeFirstHundredBytes(t *testing.T) {
	app, store := newTestApp(t, fakeFlowClient{}, fakeRenderer{})
	data := seedVideo(t, store, "media/videos/1/720p30/AnimationScene.mp4", 1000)

	rec := httptest.NewRecorder()
	app.Video(rec, videoRequest("media/videos/1/720p30/AnimationScene.mp4", "bytes=0-99"))

	require.Equal(t, http.StatusPartialContent, rec.Code)
	require.Equal(t, "bytes 0-99/1000", rec.Header().Get("Content-Range"))
	require.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))
	require.Equal(t, "100", rec.Header().Get("Content-Length"))
	require.Equal(t, data[:100], rec.Body.Bytes())
}

func TestVideoRangeOpenEndedDefaultsToEOF(t *testing.T) {
	app, store := newTestApp(t, fakeFlowClient{}, fakeRenderer{})
	data := seedVideo(t, store, "media/videos/1/720p30/AnimationScene.mp4", 1000)

	rec := httptest.NewRecorder()
	app.Video(rec, videoRequest("media/videos/1/720p30/AnimationScene.mp4", "bytes=900-"))

	require.Equal(t, http.StatusPartialContent, rec.Code)
	require.Equal(t, "bytes 900-999/1000", rec.Header().Get("Content-Range"))
	require.Equal(t, data[900:], rec.Body.Bytes())
}

func TestVideoRangeMalformedIs416(t *testing.T) {
	app, store := newTestApp(t, fakeFlowClient{}, fakeRenderer{})
	seedVideo(t, store, "media/videos/1/720p30/AnimationScene.mp4", 1000)

	for _, header := range []string{"bytes=abc-", "chunks=0-99", "bytes=500-100", "bytes=1000-"} {
		rec := httptest.NewRecorder()
		app.Video(rec, videoRequest("media/videos/1/720p30/AnimationScene.mp4", header))
		require.Equal(t, http.StatusRequestedRangeNotSatisfiable, rec.Code, "header %q", header)
	}
}

func TestVideoContentTypeFollowsExtension(t *testing.T) {
	app, store := newTestApp(t, fakeFlowClient{}, fakeRenderer{})
	seedVideo(t, store, "media/videos/1/preview.png", 10)

	rec := httptest.NewRecorder()
	app.Video(rec, videoRequest("media/videos/1/preview.png", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}
