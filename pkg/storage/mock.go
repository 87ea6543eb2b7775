package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jwebster45206/zoinkies/pkg/state"
)

// MockStorage is an in-memory Storage for tests. Values are stored as JSON so
// callers never share pointers with the store, the same as a real backend.
type MockStorage struct {
	mu      sync.RWMutex
	worlds  map[string][]byte
	players map[string][]byte
	locks   map[string]bool

	worldSets  map[string]int
	playerSets map[string]int

	pingError      error
	setWorldError  error
	setPlayerError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		worlds:     make(map[string][]byte),
		players:    make(map[string][]byte),
		locks:      make(map[string]bool),
		worldSets:  make(map[string]int),
		playerSets: make(map[string]int),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetWriteErrors makes SetWorld and SetPlayer fail with the given errors.
func (m *MockStorage) SetWriteErrors(worldErr, playerErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setWorldError = worldErr
	m.setPlayerError = playerErr
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) GetWorld(ctx context.Context, playerID string) (*state.WorldState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.worlds[playerID]
	if !ok {
		return nil, nil
	}
	var ws state.WorldState
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world: %w", err)
	}
	return &ws, nil
}

func (m *MockStorage) SetWorld(ctx context.Context, playerID string, ws *state.WorldState) error {
	if ws == nil {
		return errors.New("world cannot be nil")
	}
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setWorldError != nil {
		return m.setWorldError
	}
	m.worlds[playerID] = data
	m.worldSets[playerID]++
	return nil
}

func (m *MockStorage) GetPlayer(ctx context.Context, playerID string) (*state.PlayerState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.players[playerID]
	if !ok {
		return nil, nil
	}
	var ps state.PlayerState
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}
	return &ps, nil
}

func (m *MockStorage) SetPlayer(ctx context.Context, playerID string, ps *state.PlayerState) error {
	if ps == nil {
		return errors.New("player cannot be nil")
	}
	data, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setPlayerError != nil {
		return m.setPlayerError
	}
	m.players[playerID] = data
	m.playerSets[playerID]++
	return nil
}

func (m *MockStorage) AcquirePlayerLock(ctx context.Context, playerID string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[playerID] {
		return nil, fmt.Errorf("%w: %s", ErrPlayerLocked, playerID)
	}
	m.locks[playerID] = true
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.locks, playerID)
		})
	}, nil
}

// PutWorld seeds a world without counting it as a write (for testing)
func (m *MockStorage) PutWorld(playerID string, ws *state.WorldState) {
	data, _ := json.Marshal(ws)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worlds[playerID] = data
}

// PutPlayer seeds a player without counting it as a write (for testing)
func (m *MockStorage) PutPlayer(playerID string, ps *state.PlayerState) {
	data, _ := json.Marshal(ps)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[playerID] = data
}

// RawWorld returns the stored world bytes (for testing)
func (m *MockStorage) RawWorld(playerID string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.worlds[playerID]
}

// RawPlayer returns the stored player bytes (for testing)
func (m *MockStorage) RawPlayer(playerID string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.players[playerID]
}

// WorldWrites returns how many times SetWorld succeeded for the player.
func (m *MockStorage) WorldWrites(playerID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.worldSets[playerID]
}

// PlayerWrites returns how many times SetPlayer succeeded for the player.
func (m *MockStorage) PlayerWrites(playerID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.playerSets[playerID]
}

// Locked reports whether the player's lock is held.
func (m *MockStorage) Locked(playerID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.locks[playerID]
}
