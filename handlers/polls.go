// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollboard/audit"
	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/store"
	"github.com/danielhkuo/pollboard/validate"
)

type PollHandler struct {
	polls    *store.PollStore
	resolver auth.TokenResolver
	audit    audit.Sink
	cfg      cliparse.Config
}

func NewPollHandler(db *sql.DB, resolver auth.TokenResolver, sink audit.Sink, cfg cliparse.Config) *PollHandler {
	return &PollHandler{
		polls:    store.NewPollStore(db),
		resolver: resolver,
		audit:    sink,
		cfg:      cfg,
	}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		if errors.Is(err, middleware.ErrBodyTooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input before authenticating; both run before any store
	// access.
	normalized, fieldErrs := validate.CreatePoll(req)
	if len(fieldErrs) > 0 {
		middleware.ValidationErrorResponse(w, fieldErrs)
		return
	}

	user, err := auth.Authenticate(r, h.resolver)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	poll, err := h.polls.CreatePollWithOptions(r.Context(), normalized.Title, normalized.Description, user.ID, normalized.Options)
	if err != nil {
		slog.Error("failed to create poll", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	recordAudit(r, h.audit, h.cfg, audit.Event{
		Type:    audit.EventPollCreated,
		ActorID: user.ID,
		PollID:  poll.ID,
	})

	slog.Info("poll created", "poll_id", poll.ID, "user_id", user.ID, "options", len(poll.Options))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		Success: true,
		Message: "Poll created successfully",
		PollID:  poll.ID,
		Poll:    *poll,
	})
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.FetchPollsWithVotes(r.Context())
	if err != nil {
		slog.Error("failed to fetch polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListPollsResponse{
		Success: true,
		Polls:   polls,
	})
}

// recordAudit sends an event to the sink, filling in request metadata.
// Audit failures are logged and swallowed; they never fail the request.
func recordAudit(r *http.Request, sink audit.Sink, cfg cliparse.Config, e audit.Event) {
	e.IPHash = auth.HashIP(middleware.GetClientIP(r), cfg.TokenSecret)
	e.UserAgent = r.UserAgent()

	if err := sink.Record(r.Context(), e); err != nil {
		slog.Warn("audit record failed", "event", e.Type, "error", err)
	}
}
