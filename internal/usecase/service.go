package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/ports"
	"svw.info/pipeword/internal/progression"
	"svw.info/pipeword/internal/puzzle"
)

var (
	ErrUnknownSession = errors.New("usecase: unknown session")
	ErrLocked         = errors.New("usecase: connection is locked or already completed")

	errNotConfigured = errors.New("usecase dependency not configured")
)

// Service coordinates the map graph and the running puzzle sessions.
// Sessions live in memory, keyed by generated id; starting a new game
// simply discards the prior session's tiles.
type Service struct {
	Generator ports.PathGenerator
	Validator ports.Validator
	Hinter    ports.Hinter
	Words     ports.WordSource
	Map       *progression.Map
	Layout    domain.LayoutConfig
	Obstacles int
	Logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*puzzle.Session
}

func NewService(g ports.PathGenerator, v ports.Validator, h ports.Hinter, w ports.WordSource,
	m *progression.Map, layout domain.LayoutConfig, obstacles int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Generator: g,
		Validator: v,
		Hinter:    h,
		Words:     w,
		Map:       m,
		Layout:    layout,
		Obstacles: obstacles,
		Logger:    logger,
		sessions:  make(map[string]*puzzle.Session),
	}
}

// MapState is a snapshot of the progression graph for display.
type MapState struct {
	Connections []domain.Connection `json:"connections"`
	Completed   []int               `json:"completed"`
	Available   []int               `json:"available"`
	Discovered  map[int]string      `json:"discovered"`
	Solved      bool                `json:"solved"`
}

// MapState returns the current progression snapshot.
func (u *Service) MapState(ctx context.Context) (MapState, error) {
	if u.Map == nil {
		return MapState{}, errNotConfigured
	}
	return MapState{
		Connections: u.Map.Connections(),
		Completed:   u.Map.Completed(),
		Available:   u.Map.Available(),
		Discovered:  u.Map.Discovered(),
		Solved:      u.Map.Solved(),
	}, nil
}

// Start opens a puzzle session for an unlocked connection and returns
// its id. Locked, unknown and already-completed connections fail with
// ErrLocked.
func (u *Service) Start(ctx context.Context, connID int, seed int64) (string, *puzzle.Session, error) {
	if u.Map == nil {
		return "", nil, errNotConfigured
	}
	conn, ok := u.Map.Connection(connID)
	if !ok || !u.Map.IsAvailable(connID) {
		return "", nil, fmt.Errorf("%w: connection %d", ErrLocked, connID)
	}
	return u.open(ctx, conn.Word, connID, seed)
}

// StartRandom opens a standalone session on a word from the word
// source, outside the map graph.
func (u *Service) StartRandom(ctx context.Context, seed int64) (string, *puzzle.Session, error) {
	if u.Words == nil {
		return "", nil, errNotConfigured
	}
	word, err := u.Words.Random(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("pick word: %w", err)
	}
	return u.open(ctx, word, 0, seed)
}

func (u *Service) open(ctx context.Context, word string, connID int, seed int64) (string, *puzzle.Session, error) {
	s, err := puzzle.NewSession(ctx, puzzle.Config{
		Word:         word,
		ConnectionID: connID,
		Layout:       u.Layout,
		Obstacles:    u.Obstacles,
		Seed:         seed,
		Generator:    u.Generator,
		Validator:    u.Validator,
		Logger:       u.Logger,
	})
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()
	u.mu.Lock()
	u.sessions[id] = s
	u.mu.Unlock()
	return id, s, nil
}

// Session returns the running session with the given id.
func (u *Service) Session(id string) (*puzzle.Session, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	s, ok := u.sessions[id]
	return s, ok
}

// Move places a tile within a session.
func (u *Service) Move(ctx context.Context, sessionID string, tileID int, pos domain.Position) error {
	s, ok := u.Session(sessionID)
	if !ok {
		return ErrUnknownSession
	}
	return s.Move(tileID, pos)
}

// ReturnTile sends a tile back to the tray.
func (u *Service) ReturnTile(ctx context.Context, sessionID string, tileID int) error {
	s, ok := u.Session(sessionID)
	if !ok {
		return ErrUnknownSession
	}
	return s.Return(tileID)
}

// Check validates the session's grid. A solved map-driven session
// marks its connection completed, which may unlock others and, on the
// final edge, fire the one-time map-solved signal.
func (u *Service) Check(ctx context.Context, sessionID string) (domain.CheckResult, error) {
	s, ok := u.Session(sessionID)
	if !ok {
		return domain.CheckResult{}, ErrUnknownSession
	}
	res, err := s.Check(ctx)
	if err != nil {
		return domain.CheckResult{}, err
	}
	if res.Verdict == domain.Solved && s.ConnectionID != 0 && u.Map != nil {
		if err := u.Map.Complete(ctx, s.ConnectionID); err != nil {
			// The solve stands even when persistence fails.
			u.Logger.Warn("persist completion failed", "connection", s.ConnectionID, "err", err)
		}
	}
	return res, nil
}

// Hint asks the configured hinter for the next cell worth fixing.
func (u *Service) Hint(ctx context.Context, sessionID string) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	s, ok := u.Session(sessionID)
	if !ok {
		return domain.Hint{}, false, ErrUnknownSession
	}
	return u.Hinter.Hint(ctx, s.Route, s.Grid, s.Word)
}

// Abandon discards a session. It carries no payload: the map graph is
// untouched and the tiles are simply dropped.
func (u *Service) Abandon(sessionID string) {
	u.mu.Lock()
	delete(u.sessions, sessionID)
	u.mu.Unlock()
}
