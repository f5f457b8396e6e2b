package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/idkspot/idkspot-go/internal/database/models"
	"github.com/idkspot/idkspot-go/internal/services/hotspot"
	"github.com/idkspot/idkspot-go/internal/services/pubsub"
	"github.com/idkspot/idkspot-go/internal/services/stations"
	"github.com/idkspot/idkspot-go/internal/services/version"
	"github.com/idkspot/idkspot-go/internal/services/wireless"
)

var startedAt = time.Now()

// statusPayload is the response body for /api/status and /api/hotspot/stop.
type statusPayload struct {
	State   hotspot.SessionState `json:"state"`
	Session *hotspot.Session     `json:"session,omitempty"`
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version.Get().Version,
		"uptime":    time.Since(startedAt).Round(time.Second).String(),
	})
}

// handleInterfaces returns the detected wireless interfaces. The first
// request scans; later requests serve the cached snapshot unless
// ?refresh=1 forces a rescan.
func (s *Server) handleInterfaces(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") != ""

	var ifaces []wireless.Interface
	if refresh || s.wireless.LastScan().IsZero() {
		detected, err := s.wireless.Detect(r.Context())
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		ifaces = detected
		s.events.Publish(pubsub.TopicInterfaces, "", ifaces)
	} else {
		ifaces = s.wireless.Snapshot()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"interfaces": ifaces,
		"scannedAt":  s.wireless.LastScan().UTC().Format(time.RFC3339),
	})
}

// handleStatus reports the controller state without blocking on any
// in-flight transition.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusPayload{
		State:   s.hotspot.Status(),
		Session: s.hotspot.Snapshot(),
	})
}

// handleStart starts a hotspot session from the posted config. Fields
// omitted from the body fall back to the daemon defaults.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var cfg hotspot.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if cfg.SSID == "" {
		cfg.SSID = s.opts.DefaultSSID
	}

	sess, err := s.hotspot.Start(r.Context(), cfg)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// handleStop stops the active session and reports the settled state.
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.hotspot.Stop(r.Context()); err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, statusPayload{
		State:   s.hotspot.Status(),
		Session: s.hotspot.Snapshot(),
	})
}

// handleDevices lists clients connected to the running hotspot.
func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.hotspot.ConnectedDevices(r.Context())
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	if devices == nil {
		devices = []stations.Device{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"devices": devices})
}

// handleSessions returns recent session history, newest first.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	sessions, err := s.hotspot.Sessions(r.Context(), limit)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// statusForError maps service errors to HTTP status codes. Sentinel
// checks run before the struct checks because StartError wraps the
// permission and timeout sentinels.
func statusForError(err error) int {
	switch {
	case errors.Is(err, wireless.ErrNoInterfaceFound), errors.Is(err, wireless.ErrNoCapableHardware):
		return http.StatusPreconditionFailed
	case errors.Is(err, hotspot.ErrAlreadyActive), errors.Is(err, hotspot.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, hotspot.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, hotspot.ErrStartTimeout):
		return http.StatusGatewayTimeout
	}

	var ve *hotspot.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity
	}

	var startErr *hotspot.StartError
	var stopErr *hotspot.StopError
	if errors.As(err, &startErr) || errors.As(err, &stopErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
