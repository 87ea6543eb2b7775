package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/zoinkies/pkg/catalog"
	"github.com/jwebster45206/zoinkies/pkg/game"
	"github.com/jwebster45206/zoinkies/pkg/respawn"
	"github.com/jwebster45206/zoinkies/pkg/spawn"
	"github.com/jwebster45206/zoinkies/pkg/state"
	"github.com/jwebster45206/zoinkies/pkg/storage"
)

// errInvalidRequest marks malformed request bodies and parameters.
var errInvalidRequest = errors.New("invalid request")

type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps resolver errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, state.ErrLocationNotFound),
		errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, respawn.ErrStillRecovering),
		errors.Is(err, respawn.ErrUnavailable),
		errors.Is(err, storage.ErrPlayerLocked):
		return http.StatusConflict
	case errors.Is(err, game.ErrInsufficientResources):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrInvalidBattleTarget),
		errors.Is(err, game.ErrInvalidTarget),
		errors.Is(err, spawn.ErrInvalidLocationInput),
		errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrCatalogUnavailable),
		errors.Is(err, catalog.ErrReferenceItemNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError logs err and writes it as an ErrorResponse. Internal errors are
// not echoed to the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		msg = "Internal server error"
	} else {
		logger.Warn("Request rejected", "error", err, "status", status)
	}
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}
