// Package api serves a read-only HTTP view of guild backlogs and the events
// they voted onto the calendar.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/KirkDiggler/astrolabe/internal/calendar"
	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/KirkDiggler/astrolabe/internal/services/catalog"
	"github.com/KirkDiggler/astrolabe/internal/services/voting"
)

// Config holds the handler's dependencies
type Config struct {
	CatalogService catalog.Service
	VotingService  voting.Service
	Exporter       *calendar.Exporter
	Logger         *slog.Logger
}

// Handler holds the HTTP handlers
type Handler struct {
	catalogService catalog.Service
	votingService  voting.Service
	exporter       *calendar.Exporter
	logger         *slog.Logger
}

// EventResponse is one backlog entry
type EventResponse struct {
	Title       string     `json:"title"`
	Date        string     `json:"date"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ScheduledResponse is one approved session
type ScheduledResponse struct {
	SessionID   string    `json:"session_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Approve     int       `json:"approve"`
	Reject      int       `json:"reject"`
	Published   bool      `json:"published"`
	ExternalRef string    `json:"external_ref,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates a new handler
func NewHandler(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.CatalogService == nil {
		return nil, errors.New("catalog service cannot be nil")
	}
	if cfg.VotingService == nil {
		return nil, errors.New("voting service cannot be nil")
	}
	if cfg.Exporter == nil {
		return nil, errors.New("exporter cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		catalogService: cfg.CatalogService,
		votingService:  cfg.VotingService,
		exporter:       cfg.Exporter,
		logger:         logger.With("component", "api"),
	}, nil
}

// Routes builds the router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(h.accessLog)

	r.Get("/health", Health)

	r.Route("/guilds/{guildID}", func(r chi.Router) {
		r.Get("/events", h.ListEvents)
		r.Get("/scheduled", h.ListScheduled)
		r.Get("/calendar.ics", h.Calendar)
	})

	return r
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListEvents handles GET /guilds/{guildID}/events
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")

	output, err := h.catalogService.ListEvents(r.Context(), &catalog.ListEventsInput{GuildID: guildID})
	if err != nil {
		h.writeServiceError(w, err, "failed to list events")
		return
	}

	events := make([]EventResponse, 0, len(output.Events))
	for _, event := range output.Events {
		if event == nil {
			continue
		}
		events = append(events, EventResponse{
			Title:       event.Title,
			Date:        event.Date,
			Location:    event.Location,
			Description: event.Description,
			ScheduledAt: event.ScheduledAt,
			CreatedAt:   event.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, events)
}

// ListScheduled handles GET /guilds/{guildID}/scheduled
func (h *Handler) ListScheduled(w http.ResponseWriter, r *http.Request) {
	sessions, ok := h.scheduled(w, r)
	if !ok {
		return
	}

	scheduled := make([]ScheduledResponse, 0, len(sessions))
	for _, session := range sessions {
		scheduled = append(scheduled, ScheduledResponse{
			SessionID:   session.ID,
			Title:       session.Event.Title,
			Location:    session.Event.Location,
			ScheduledAt: session.ScheduledAt,
			Approve:     session.ApproveCount,
			Reject:      session.RejectCount,
			Published:   session.Publication.Status == models.PublicationStatusPublished,
			ExternalRef: session.Publication.ExternalRef,
		})
	}

	writeJSON(w, http.StatusOK, scheduled)
}

// Calendar handles GET /guilds/{guildID}/calendar.ics
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	sessions, ok := h.scheduled(w, r)
	if !ok {
		return
	}

	output, err := h.exporter.Export(&calendar.ExportInput{
		Name:     "Guild events",
		Sessions: sessions,
	})
	if err != nil {
		h.logger.Error("failed to export calendar", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to export calendar")
		return
	}

	w.Header().Set("Content-Type", calendar.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(output.Body)
}

func (h *Handler) scheduled(w http.ResponseWriter, r *http.Request) ([]*models.VotingSession, bool) {
	guildID := chi.URLParam(r, "guildID")

	output, err := h.votingService.ListScheduled(r.Context(), &voting.ListScheduledInput{GuildID: guildID})
	if err != nil {
		h.writeServiceError(w, err, "failed to list scheduled events")
		return nil, false
	}
	return output.Sessions, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput), errors.Is(err, voting.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrStoreUnavailable), errors.Is(err, voting.ErrStoreUnavailable):
		h.logger.Warn(msg, "err", err)
		writeError(w, http.StatusServiceUnavailable, msg)
	default:
		h.logger.Error(msg, "err", err)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
