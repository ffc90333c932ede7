// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pollboard/audit"
	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/store"
	"github.com/danielhkuo/pollboard/validate"
)

type VotingHandler struct {
	recorder *store.VoteRecorder
	resolver auth.TokenResolver
	audit    audit.Sink
	cfg      cliparse.Config
}

func NewVotingHandler(db *sql.DB, resolver auth.TokenResolver, sink audit.Sink, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{
		recorder: store.NewVoteRecorder(db),
		resolver: resolver,
		audit:    sink,
		cfg:      cfg,
	}
}

// CastVote handles POST /polls/{id}/vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		if errors.Is(err, middleware.ErrBodyTooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.OptionID(req.OptionID); err != nil {
		middleware.ValidationErrorResponse(w, []models.FieldError{
			{Field: "option_id", Message: err.Error()},
		})
		return
	}
	optionID := strings.TrimSpace(req.OptionID)

	user, err := auth.Authenticate(r, h.resolver)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	vote, err := h.recorder.Record(r.Context(), pollID, optionID, user.ID)
	switch {
	case errors.Is(err, store.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, store.ErrPollInactive), errors.Is(err, store.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		slog.Error("failed to record vote", "error", err, "poll_id", pollID, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	recordAudit(r, h.audit, h.cfg, audit.Event{
		Type:     audit.EventVoteCast,
		ActorID:  user.ID,
		PollID:   pollID,
		OptionID: optionID,
	})

	// The vote is already durable; the results read-back is an
	// enrichment, so a failure here degrades the response rather than
	// failing it.
	results, err := h.recorder.Results(r.Context(), pollID)
	if err != nil {
		slog.Warn("failed to read back results", "error", err, "poll_id", pollID)
		results = &models.PollResults{ID: pollID}
	}

	slog.Info("vote cast", "poll_id", pollID, "option_id", optionID, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Success: true,
		Message: "Vote recorded successfully",
		Vote:    *vote,
		Poll:    *results,
	})
}

// GetPollResults handles GET /polls/{id}/vote
// Live results with per-option counts and percentages; no
// authentication required.
func (h *VotingHandler) GetPollResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	results, err := h.recorder.Results(r.Context(), pollID)
	if errors.Is(err, store.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to fetch results", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResultsResponse{
		Success: true,
		Poll:    *results,
	})
}
