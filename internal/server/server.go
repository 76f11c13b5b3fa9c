// Package server exposes the handover wizard over HTTP. Each browser
// session maps to one wizard controller held in memory; the front end
// drives edits and navigation through the JSON API and downloads the CSV
// artifact after submission.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/evergreen-digital/contract-handover/internal/derive"
	"github.com/evergreen-digital/contract-handover/internal/submit"
	"github.com/evergreen-digital/contract-handover/internal/validate"
	"github.com/evergreen-digital/contract-handover/internal/wizard"
	"github.com/evergreen-digital/contract-handover/pkg/output"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	coordinator *submit.Coordinator
	store       *sessionStore
	version     string
}

// NewHandler constructs the HTTP handler that serves the wizard API.
func NewHandler(logger *zap.Logger, coordinator *submit.Coordinator, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		coordinator: coordinator,
		store:       newSessionStore(),
		version:     trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)

		r.Post("/sessions", h.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.withSession(h.handleState))
			r.Delete("/", h.handleDeleteSession)
			r.Patch("/fields", h.withSession(h.handleEditField))
			r.Post("/advance", h.withSession(h.handleAdvance))
			r.Post("/retreat", h.withSession(h.handleRetreat))
			r.Post("/confirm", h.withSession(h.handleConfirm))
			r.Post("/reset", h.withSession(h.handleReset))
			r.Post("/submit", h.withSession(h.handleSubmit))
			r.Get("/artifact", h.withSession(h.handleArtifact))
			r.Get("/summary", h.withSession(h.handleSummary))
		})
	})

	return r
}

// stateResponse is the wizard state returned by most endpoints.
type stateResponse struct {
	SessionID string            `json:"sessionId"`
	Step      int               `json:"step"`
	Confirmed bool              `json:"confirmed"`
	Fields    fieldsPayload     `json:"fields"`
	Derived   derive.Values     `json:"derived"`
	Errors    validate.ErrorMap `json:"errors"`
}

// fieldsPayload is the wire form of the raw record.
type fieldsPayload struct {
	Values   map[string]string `json:"values"`
	Services map[string]bool   `json:"services"`
}

type editFieldRequest struct {
	Field    string `json:"field,omitempty"`
	Value    string `json:"value,omitempty"`
	Service  string `json:"service,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

type confirmRequest struct {
	Confirmed bool `json:"confirmed"`
}

type advanceResponse struct {
	Advanced bool `json:"advanced"`
	stateResponse
}

type submitResponse struct {
	Outcome  *submit.Outcome `json:"outcome,omitempty"`
	Filename string          `json:"filename,omitempty"`
	stateResponse
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	controller := wizard.NewController(h.coordinator, h.logger)
	id := h.store.create(controller)
	h.logger.Debug("session created",
		zap.String("op", "server.handleCreateSession"),
		zap.String("session", id),
	)
	h.writeJSON(w, http.StatusCreated, h.state(id, controller))
}

func (h *handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if _, ok := h.store.get(id); !ok {
		h.respondError(w, http.StatusNotFound, "unknown session")
		return
	}
	h.store.delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// withSession resolves the session from the URL, serializes access to it,
// and invokes the wrapped handler.
func (h *handler) withSession(fn func(http.ResponseWriter, *http.Request, string, *session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		sess, ok := h.store.get(id)
		if !ok {
			h.respondError(w, http.StatusNotFound, "unknown session")
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		fn(w, r, id, sess)
	}
}

func (h *handler) handleState(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	h.writeJSON(w, http.StatusOK, h.state(id, sess.controller))
}

func (h *handler) handleEditField(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	var req editFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	var err error
	switch {
	case req.Service != "":
		err = sess.controller.SetService(req.Service, req.Selected)
	case req.Field != "":
		err = sess.controller.SetField(req.Field, req.Value)
	default:
		h.respondError(w, http.StatusBadRequest, "either field or service must be provided")
		return
	}
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, h.state(id, sess.controller))
}

func (h *handler) handleAdvance(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	advanced := sess.controller.Advance()
	h.writeJSON(w, http.StatusOK, advanceResponse{
		Advanced:      advanced,
		stateResponse: h.state(id, sess.controller),
	})
}

func (h *handler) handleRetreat(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	sess.controller.Retreat()
	h.writeJSON(w, http.StatusOK, h.state(id, sess.controller))
}

func (h *handler) handleConfirm(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return
	}
	sess.controller.SetConfirmed(req.Confirmed)
	h.writeJSON(w, http.StatusOK, h.state(id, sess.controller))
}

func (h *handler) handleReset(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	sess.controller.Reset()
	sess.artifact = nil
	h.writeJSON(w, http.StatusOK, h.state(id, sess.controller))
}

func (h *handler) handleSubmit(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	artifact, outcome, err := sess.controller.Submit(r.Context())
	switch {
	case errors.Is(err, wizard.ErrNotOnSummaryStep):
		h.respondError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, wizard.ErrSubmissionInProgress):
		h.respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		// Export failure is the only fatal submission error.
		h.logger.Error("submission failed",
			zap.String("op", "server.handleSubmit"),
			zap.String("session", id),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError,
			"failed to generate the export file; your data is unchanged, please try again")
		return
	}

	resp := submitResponse{stateResponse: h.state(id, sess.controller)}
	if artifact != nil {
		sess.artifact = artifact
		resp.Outcome = outcome
		resp.Filename = artifact.Filename
		h.writeJSON(w, http.StatusOK, resp)
		return
	}

	// Unconfirmed submission: the controller recorded a summary error.
	h.writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func (h *handler) handleArtifact(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	if sess.artifact == nil {
		h.respondError(w, http.StatusNotFound, "no artifact available; submit the form first")
		return
	}
	w.Header().Set("Content-Type", sess.artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sess.artifact.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(sess.artifact.Data); err != nil {
		h.logger.Warn("failed to write artifact response",
			zap.String("op", "server.handleArtifact"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	summary := output.SummaryFormat(sess.controller.Fields(), sess.controller.Derived())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(summary)); err != nil {
		h.logger.Warn("failed to write summary response",
			zap.String("op", "server.handleSummary"),
			zap.Error(err),
		)
	}
}

func (h *handler) state(id string, controller *wizard.Controller) stateResponse {
	fields := controller.Fields()
	return stateResponse{
		SessionID: id,
		Step:      controller.Step(),
		Confirmed: controller.Confirmed(),
		Fields: fieldsPayload{
			Values:   fields.Pairs(),
			Services: fields.Services,
		},
		Derived: controller.Derived(),
		Errors:  controller.Errors(),
	}
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
