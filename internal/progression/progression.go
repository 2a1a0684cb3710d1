// Package progression models the overworld map: a small directed
// acyclic graph of locations whose edges ("connections") each gate one
// word puzzle. Completing a connection can unlock others; completing
// all of them solves the map.
package progression

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/duke-git/lancet/v2/slice"

	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/ports"
)

// DefaultConnections is the built-in five-edge topology. Prerequisites
// are data on the edge, not special cases in code: an edge unlocks
// once every id it requires is completed.
func DefaultConnections() []domain.Connection {
	return []domain.Connection{
		{ID: 1, From: domain.LocStart, To: domain.LocOne, Word: "RIVER"},
		{ID: 2, From: domain.LocStart, To: domain.LocTwo, Word: "VALLEY"},
		{ID: 3, From: domain.LocOne, To: domain.LocThree, Word: "TOWER", Requires: []int{1}},
		{ID: 4, From: domain.LocTwo, To: domain.LocThree, Word: "BRIDGE", Requires: []int{2}},
		{ID: 5, From: domain.LocThree, To: domain.LocEnd, Word: "CASTLE", Requires: []int{3, 4}},
	}
}

// Map tracks which connections are completed and which are currently
// unlockable. The connection set is immutable for the session.
type Map struct {
	mu         sync.Mutex
	conns      map[int]domain.Connection
	order      []int // connection ids, ascending
	completed  map[int]bool
	discovered map[int]string // destination location -> word, labels only
	store      ports.ProgressStore
	onSolved   func() // fired once, from the live completing call
	logger     *slog.Logger
}

// New builds a map over the given connections. store may be nil for a
// purely in-memory map; onSolved may be nil when nobody listens.
func New(conns []domain.Connection, store ports.ProgressStore, onSolved func(), logger *slog.Logger) *Map {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Map{
		conns:      make(map[int]domain.Connection, len(conns)),
		completed:  make(map[int]bool),
		discovered: make(map[int]string),
		store:      store,
		onSolved:   onSolved,
		logger:     logger,
	}
	for _, c := range conns {
		m.conns[c.ID] = c
		m.order = append(m.order, c.ID)
	}
	sort.Ints(m.order)
	return m
}

// Load rehydrates completion state from the store. A read failure
// degrades to empty progress; it is logged, never fatal, and the
// solved signal does not fire from here even when the loaded state is
// already complete.
func (m *Map) Load(ctx context.Context) {
	if m.store == nil {
		return
	}
	ids, err := m.store.Completed(ctx)
	if err != nil {
		m.logger.Warn("progress load failed, starting empty", "err", err)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		c, ok := m.conns[id]
		if !ok {
			continue
		}
		m.completed[id] = true
		m.discovered[c.To] = c.Word
	}
}

// Connection returns the edge with the given id.
func (m *Map) Connection(id int) (domain.Connection, bool) {
	c, ok := m.conns[id]
	return c, ok
}

// Connections returns every edge, ordered by id.
func (m *Map) Connections() []domain.Connection {
	out := make([]domain.Connection, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.conns[id])
	}
	return out
}

// Available lists the ids of connections that can be played now: not
// yet completed, with every prerequisite completed. Ordered by id.
func (m *Map) Available() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available()
}

func (m *Map) available() []int {
	var out []int
	for _, id := range m.order {
		if m.completed[id] {
			continue
		}
		unlocked := true
		for _, req := range m.conns[id].Requires {
			if !m.completed[req] {
				unlocked = false
				break
			}
		}
		if unlocked {
			out = append(out, id)
		}
	}
	return out
}

// IsAvailable reports whether the connection can be played now.
func (m *Map) IsAvailable(id int) bool {
	return slice.Contain(m.Available(), id)
}

// Complete marks the connection done. It is idempotent, records the
// edge's word as discovered for its destination, persists the id, and
// fires the solved signal exactly once: on the live call that
// completes the final edge, never again and never from Load.
func (m *Map) Complete(ctx context.Context, id int) error {
	m.mu.Lock()
	c, ok := m.conns[id]
	if !ok || m.completed[id] {
		m.mu.Unlock()
		return nil
	}
	m.completed[id] = true
	m.discovered[c.To] = c.Word
	var fire func()
	if m.solved() && m.onSolved != nil {
		fire = m.onSolved
		m.onSolved = nil
	}
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.MarkCompleted(ctx, id); err != nil {
			return err
		}
	}
	m.logger.Info("connection completed", "id", id, "word", c.Word)
	if fire != nil {
		fire()
	}
	return nil
}

// Completed returns the completed connection ids, ascending.
func (m *Map) Completed() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int
	for _, id := range m.order {
		if m.completed[id] {
			out = append(out, id)
		}
	}
	return out
}

// Discovered maps location index to the word revealed by reaching it.
// Display labels only; no gameplay effect.
func (m *Map) Discovered() map[int]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int]string, len(m.discovered))
	for k, v := range m.discovered {
		out[k] = v
	}
	return out
}

// Solved reports whether every connection is completed.
func (m *Map) Solved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.solved()
}

func (m *Map) solved() bool {
	return len(m.completed) == len(m.conns) && len(m.conns) > 0
}
