// Package api provides HTTP handlers for the slot calculator.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bredele/available-slots/internal/core/slots"
	"github.com/bredele/available-slots/internal/shell/api/openapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes caps request bodies when Config.MaxBodyBytes is unset.
const DefaultMaxBodyBytes = 1 << 20

// =============================================================================
// Handler
// =============================================================================

// Config configures the API handler.
type Config struct {
	// Defaults fill in fields a request omits. Busy is ignored.
	Defaults slots.Options

	Logger       *slog.Logger
	Version      string
	MaxBodyBytes int64
}

// Handler provides HTTP handlers for the API.
type Handler struct {
	defaults     slots.Options
	logger       *slog.Logger
	version      string
	maxBodyBytes int64
	spec         *openapi.Generator
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	defaults := cfg.Defaults
	defaults.Busy = nil

	return &Handler{
		defaults:     defaults.WithDefaults(),
		logger:       l,
		version:      cfg.Version,
		maxBodyBytes: maxBody,
		spec:         newSpec(cfg.Version),
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(WithRequestID)
	r.Use(WithAccessLog(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/openapi.json", h.spec.Handler())

	r.Group(func(r chi.Router) {
		r.Use(jsonContentType)

		r.Get("/health", h.handleHealth)

		r.Post("/api/v1/slots", h.handleFindSlots)
		r.Post("/api/v1/slots/merge", h.handleMergeBusy)
	})

	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: h.version})
}

func (h *Handler) handleFindSlots(w http.ResponseWriter, r *http.Request) {
	var req FindSlotsRequest
	if !h.decode(w, r, &req) {
		return
	}

	if field, msg := req.Validate(); field != "" {
		h.writeFieldError(w, field, msg)
		return
	}

	opts := req.Options(h.defaults)
	available, err := slots.Find(opts)
	if err != nil {
		h.writeSlotsError(w, r, err)
		return
	}

	h.logger.Debug("slots computed",
		"request_id", RequestIDFromContext(r.Context()),
		"busy", len(opts.Busy),
		"slot_size", opts.SlotSize,
		"break_time", opts.BreakTime,
		"window", opts.StartTime+"-"+opts.EndTime,
		"count", len(available),
	)

	h.writeJSON(w, http.StatusOK, NewSlotsResponse(available))
}

func (h *Handler) handleMergeBusy(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if field, msg := req.Validate(); field != "" {
		h.writeFieldError(w, field, msg)
		return
	}

	merged, err := slots.Merge(req.Busy)
	if err != nil {
		h.writeSlotsError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, NewSlotsResponse(merged))
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "body_too_large")
			return false
		}
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "invalid_json")
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func (h *Handler) writeFieldError(w http.ResponseWriter, field, message string) {
	h.writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: message,
		Code:  "validation_error",
		Field: field,
	})
}

// writeSlotsError maps errors from the slots package to HTTP responses.
func (h *Handler) writeSlotsError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *slots.ParseError
	switch {
	case errors.As(err, &pe):
		h.writeFieldError(w, pe.Field, err.Error())
	case errors.Is(err, slots.ErrInvalidSlotSize):
		h.writeFieldError(w, "slot_size", err.Error())
	case errors.Is(err, slots.ErrInvalidBreakTime):
		h.writeFieldError(w, "break_time", err.Error())
	default:
		h.logger.Error("slot computation failed",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		h.writeError(w, http.StatusInternalServerError, "internal error", "internal_error")
	}
}
