package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"animatify/internal/storage"
)

// Video streams an artifact from under the storage root, honoring single
// byte-range requests so browsers can seek. The file is only ever read.
func (a *App) Video(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("path")
	if key == "" {
		http.Error(w, "Video path is required", http.StatusBadRequest)
		return
	}

	info, err := a.Store.Stat(key)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			http.Error(w, "Invalid video path", http.StatusForbidden)
			return
		}
		a.Logger.Error().Err(err).Str("path", key).Msg("video: stat failed")
		http.Error(w, "Error streaming video", http.StatusInternalServerError)
		return
	}
	size := info.Size()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "video/mp4"
	}

	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		start, end, ok := parseRange(rangeHeader, size)
		if !ok {
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
			http.Error(w, "Invalid range", http.StatusRequestedRangeNotSatisfiable)
			return
		}

		f, err := a.Store.Open(key)
		if err != nil {
			http.Error(w, "Error streaming video", http.StatusInternalServerError)
			return
		}
		defer f.Close()
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			http.Error(w, "Error streaming video", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
		w.Header().Set("Accept-Ranges", "bytes")
		w.Header().Set("Content-Length", strconv.FormatInt(end-start+1, 10))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusPartialContent)
		_, _ = io.CopyN(w, f, end-start+1)
		return
	}

	f, err := a.Store.Open(key)
	if err != nil {
		http.Error(w, "Error streaming video", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, f)
}

// parseRange handles the single-range form `bytes=<start>-<end>`; end
// defaults to size-1 when omitted.
func parseRange(header string, size int64) (start, end int64, ok bool) {
	spec, found := strings.CutPrefix(header, "bytes=")
	if !found {
		return 0, 0, false
	}
	first, rest, found := strings.Cut(spec, "-")
	if !found {
		return 0, 0, false
	}
	start, err := strconv.ParseInt(strings.TrimSpace(first), 10, 64)
	if err != nil || start < 0 {
		return 0, 0, false
	}
	end = size - 1
	if rest = strings.TrimSpace(rest); rest != "" {
		end, err = strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return 0, 0, false
		}
	}
	if end >= size {
		end = size - 1
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}
