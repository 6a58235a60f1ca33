// Package server exposes the generator over HTTP: the default preset for new
// sessions and the generation of pattern documents from presets.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/vsariola/psymachine"
	"github.com/vsariola/psymachine/config"
	"github.com/vsariola/psymachine/generator"
	"github.com/vsariola/psymachine/renoise"
	"github.com/vsariola/psymachine/version"
	"golang.org/x/sync/semaphore"
)

// maxBodySize limits the size of a generate request; presets are small.
const maxBodySize = 1 << 20

type Server struct {
	config    config.Config
	defaults  psymachine.Preset
	formatter *renoise.Formatter
	slots     *semaphore.Weighted
	Logger    *log.Logger
}

// New returns a Server rendering documents with formatter. Requests are
// completed with the default preset of the config.
func New(cfg config.Config, formatter *renoise.Formatter) *Server {
	return &Server{
		config:    cfg,
		defaults:  cfg.DefaultPreset(),
		formatter: formatter,
		slots:     semaphore.NewWeighted(int64(max(cfg.MaxConcurrent, 1))),
		Logger:    log.Default(),
	}
}

// Handler returns the router of the service.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.headers)
	router.HandleFunc("/api/preset/default", s.handleDefaultPreset).Methods("GET")
	router.HandleFunc("/api/generate", s.handleGenerate).Methods("POST", "OPTIONS")
	router.PathPrefix("/api").HandlerFunc(handleNotFound)
	router.PathPrefix("/").HandlerFunc(handleRoot).Methods("GET")
	return router
}

func (s *Server) headers(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "psymachine/"+version.VersionOrHash)
		if s.config.AllowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.config.AllowOrigin)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleDefaultPreset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.defaults)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	preset := s.defaults
	// the flags are unchecked boxes unless the request says otherwise
	preset.NoteOffOnBeat = false
	preset.NoteOnFirstTick = false
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON input")
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &preset); err != nil {
			s.Logger.Printf("rejected generate request: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid JSON input")
			return
		}
	}
	params, err := preset.Params()
	if err != nil {
		var verr *psymachine.ValidationError
		if errors.As(err, &verr) {
			s.Logger.Printf("rejected generate request: %v", verr)
			writeError(w, http.StatusBadRequest, verr.Msg)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.config.MaxTrackLength > 0 && params.TrackLength > s.config.MaxTrackLength {
		s.Logger.Printf("rejected generate request: track length %v", params.TrackLength)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Track length is limited to %v rows.", s.config.MaxTrackLength))
		return
	}
	if err := s.slots.Acquire(r.Context(), 1); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Server is busy.")
		return
	}
	start := time.Now()
	track := generator.Generate(params)
	doc, err := s.formatter.Document(track, params.Instrument)
	s.slots.Release(1)
	if err != nil {
		s.Logger.Printf("could not render document: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not render the pattern.")
		return
	}
	s.Logger.Printf("generated %v rows (%v notes) with seed %v in %v", params.TrackLength, track.Notes(), params.Seed, time.Since(start))
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, doc)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "Psymachine server. POST a preset to /api/generate to get a Renoise pattern.\n")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
