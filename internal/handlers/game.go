package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/zoinkies/internal/logger"
	"github.com/jwebster45206/zoinkies/internal/middleware"
	"github.com/jwebster45206/zoinkies/pkg/spawn"
	"github.com/jwebster45206/zoinkies/pkg/state"
	"github.com/jwebster45206/zoinkies/pkg/storage"
)

const maxBodyBytes = 1 << 20

// Resolver is the game surface served over HTTP.
type Resolver interface {
	EnsurePlayer(ctx context.Context, playerID, name string) (*state.PlayerState, bool, error)
	Player(ctx context.Context, playerID string) (*state.PlayerState, error)
	World(ctx context.Context, playerID string) (*state.WorldState, error)
	DiscoverLocations(ctx context.Context, playerID string, raws []spawn.RawLocation) ([]*state.SpawnLocation, error)
	PrepareBattle(ctx context.Context, playerID, locationID string) (*state.BattleData, error)
	ResolveBattle(ctx context.Context, playerID, locationID string, winner bool) (*state.BattleSummaryData, error)
	ResolveChest(ctx context.Context, playerID, locationID string) (*state.RewardsData, error)
	ResolveEnergyStation(ctx context.Context, playerID, locationID string) (*state.EnergyData, error)
}

type CreatePlayerRequest struct {
	Name string `json:"name"`
}

type DiscoverLocationsRequest struct {
	Locations []spawn.RawLocation `json:"locations"`
}

type DiscoverLocationsResponse struct {
	Added []*state.SpawnLocation `json:"added"`
}

type BattleSummaryRequest struct {
	Winner *bool `json:"winner"`
}

// GameHandler serves the per-player game routes. Every mutating route runs
// under the player's lock, so resolutions for one player never interleave.
type GameHandler struct {
	resolver Resolver
	locker   storage.PlayerLocker
	logger   *slog.Logger
}

func NewGameHandler(resolver Resolver, locker storage.PlayerLocker, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		resolver: resolver,
		locker:   locker,
		logger:   logger,
	}
}

// Register mounts the routes on mux.
//
// Routes:
// POST /v1/players/{playerID}                               - Create player
// GET  /v1/players/{playerID}                               - Read player
// GET  /v1/players/{playerID}/world                         - Read world
// POST /v1/players/{playerID}/locations                     - Discover locations
// POST /v1/players/{playerID}/battles/{locationID}          - Prepare battle
// POST /v1/players/{playerID}/battles/{locationID}/summary  - Resolve battle
// POST /v1/players/{playerID}/chests/{locationID}           - Open chest
// POST /v1/players/{playerID}/stations/{locationID}         - Use energy station
func (h *GameHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/players/{playerID}", h.locked(h.handleCreatePlayer))
	mux.HandleFunc("GET /v1/players/{playerID}", h.handleGetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/world", h.handleGetWorld)
	mux.HandleFunc("POST /v1/players/{playerID}/locations", h.locked(h.handleDiscover))
	mux.HandleFunc("POST /v1/players/{playerID}/battles/{locationID}", h.locked(h.handlePrepareBattle))
	mux.HandleFunc("POST /v1/players/{playerID}/battles/{locationID}/summary", h.locked(h.handleBattleSummary))
	mux.HandleFunc("POST /v1/players/{playerID}/chests/{locationID}", h.locked(h.handleChest))
	mux.HandleFunc("POST /v1/players/{playerID}/stations/{locationID}", h.locked(h.handleStation))
}

func (h *GameHandler) requestLogger(r *http.Request) *slog.Logger {
	log := logger.WithPlayer(h.logger, r.PathValue("playerID"))
	if id := middleware.GetRequestID(r.Context()); id != "" {
		log = logger.WithRequestID(log, id)
	}
	return log
}

func validID(id string) bool {
	return spawn.ValidID(id)
}

// locked validates the path ids and runs next while holding the player lock.
func (h *GameHandler) locked(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := h.requestLogger(r)
		playerID := r.PathValue("playerID")
		if !validID(playerID) {
			writeError(w, log, fmt.Errorf("%w: player id %q", errInvalidRequest, playerID))
			return
		}
		if loc := r.PathValue("locationID"); loc != "" && !validID(loc) {
			writeError(w, log, fmt.Errorf("%w: location id %q", errInvalidRequest, loc))
			return
		}
		release, err := h.locker.AcquirePlayerLock(r.Context(), playerID)
		if err != nil {
			writeError(w, log, err)
			return
		}
		defer release()
		next(w, r)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	return nil
}

func (h *GameHandler) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	var req CreatePlayerRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		writeError(w, log, err)
		return
	}
	player, created, err := h.resolver.EnsurePlayer(r.Context(), r.PathValue("playerID"), req.Name)
	if err != nil {
		writeError(w, log, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, log, status, player)
}

func (h *GameHandler) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	player, err := h.resolver.Player(r.Context(), r.PathValue("playerID"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, player)
}

func (h *GameHandler) handleGetWorld(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	world, err := h.resolver.World(r.Context(), r.PathValue("playerID"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, world)
}

func (h *GameHandler) handleDiscover(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	var req DiscoverLocationsRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, log, err)
		return
	}
	added, err := h.resolver.DiscoverLocations(r.Context(), r.PathValue("playerID"), req.Locations)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, DiscoverLocationsResponse{Added: added})
}

func (h *GameHandler) handlePrepareBattle(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	bd, err := h.resolver.PrepareBattle(r.Context(), r.PathValue("playerID"), r.PathValue("locationID"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, bd)
}

func (h *GameHandler) handleBattleSummary(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	var req BattleSummaryRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, log, err)
		return
	}
	if req.Winner == nil {
		writeError(w, log, fmt.Errorf("%w: winner is required", errInvalidRequest))
		return
	}
	summary, err := h.resolver.ResolveBattle(r.Context(), r.PathValue("playerID"), r.PathValue("locationID"), *req.Winner)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, summary)
}

func (h *GameHandler) handleChest(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	rewards, err := h.resolver.ResolveChest(r.Context(), r.PathValue("playerID"), r.PathValue("locationID"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, rewards)
}

func (h *GameHandler) handleStation(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	energy, err := h.resolver.ResolveEnergyStation(r.Context(), r.PathValue("playerID"), r.PathValue("locationID"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, energy)
}
