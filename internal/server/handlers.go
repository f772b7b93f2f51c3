// Package server handles HTTP requests and middleware.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/woozymasta/pinmap/internal/render"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/rs/zerolog/log"
)

// HandleIndex serves the map page. With ?marker=N, or a query string equal
// to some record's param, that record's marker is shown on load.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.URL.RawQuery == "" {
		s.writeHTML(w, r, s.IndexHTML, s.IndexETag)
		return
	}

	wd := s.NewWidget()
	index, ok := requestedMarker(r.URL, wd)
	if !ok {
		s.writeHTML(w, r, s.IndexHTML, s.IndexETag)
		return
	}

	wd.ShowMarker(index)
	if _, shown := wd.Marker(index); shown {
		markersShown.Inc()
	}

	page, err := s.Renderer.Page(wd)
	if err != nil {
		log.Error().Err(err).Int("index", index).Msg("Failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s.writeHTML(w, r, page, etagFor(page))
}

// requestedMarker resolves the record index to show from the query string.
func requestedMarker(u *url.URL, wd *widget.Widget) (int, bool) {
	if v := u.Query().Get("marker"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return i, true
	}

	if i, ok := wd.IndexByParam(u.RawQuery); ok {
		return i, true
	}

	// popup and list links reach us percent-encoded
	unescaped, err := url.QueryUnescape(u.RawQuery)
	if err != nil || unescaped == u.RawQuery {
		return 0, false
	}
	return wd.IndexByParam(unescaped)
}

// HandlePoints serves the loaded records as JSON.
func (s *ServerContext) HandlePoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, render.NewRecords(s.NewWidget()))
}

// HandleMarkers serves the initial widget state as JSON.
func (s *ServerContext) HandleMarkers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, render.NewState(s.NewWidget()))
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/favicon.ico" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Renderer.Favicon())
}

func (s *ServerContext) writeHTML(w http.ResponseWriter, r *http.Request, page []byte, etag string) {
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(page)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func etagFor(body []byte) string {
	h := sha256.Sum256(body)
	return `"` + hex.EncodeToString(h[:8]) + `"`
}
