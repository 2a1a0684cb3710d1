package progression

import (
	"context"
	"errors"
	"testing"

	"svw.info/pipeword/internal/domain"
)

func newTestMap(onSolved func()) *Map {
	return New(DefaultConnections(), nil, onSolved, nil)
}

func complete(t *testing.T, m *Map, ids ...int) {
	t.Helper()
	for _, id := range ids {
		if err := m.Complete(context.Background(), id); err != nil {
			t.Fatalf("complete %d: %v", id, err)
		}
	}
}

func TestAvailability(t *testing.T) {
	cases := []struct {
		name      string
		completed []int
		want      []int
	}{
		{"fresh map", nil, []int{1, 2}},
		{"one branch started", []int{1}, []int{2, 3}},
		{"both branches joined", []int{1, 2, 3, 4}, []int{5}},
		{"everything done", []int{1, 2, 3, 4, 5}, nil},
		{"final edge needs both branches", []int{1, 3}, []int{2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMap(nil)
			complete(t, m, tc.completed...)
			got := m.Available()
			if len(got) != len(tc.want) {
				t.Fatalf("Available() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Available() = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	m := newTestMap(nil)
	complete(t, m, 1, 1, 1)
	if got := m.Completed(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("Completed() = %v, want [1]", got)
	}
}

func TestCompleteUnknownIDIsNoOp(t *testing.T) {
	m := newTestMap(nil)
	complete(t, m, 42)
	if got := m.Completed(); len(got) != 0 {
		t.Fatalf("Completed() = %v after unknown id", got)
	}
}

func TestDiscoveredWords(t *testing.T) {
	m := newTestMap(nil)
	complete(t, m, 1, 2)
	d := m.Discovered()
	if d[domain.LocOne] != "RIVER" || d[domain.LocTwo] != "VALLEY" {
		t.Fatalf("Discovered() = %v", d)
	}
}

// Completing 3 then 4 unlocks 5; completing 5 empties availability and
// fires the map-solved signal exactly once, even if edges are
// re-completed afterwards.
func TestSolvedSignalFiresOnce(t *testing.T) {
	fired := 0
	m := newTestMap(func() { fired++ })

	complete(t, m, 1, 2, 3)
	if got := m.Available(); len(got) != 1 || got[0] != 4 {
		t.Fatalf("after 1,2,3: Available() = %v, want [4]", got)
	}
	complete(t, m, 4)
	if got := m.Available(); len(got) != 1 || got[0] != 5 {
		t.Fatalf("after 3 and 4: Available() = %v, want [5]", got)
	}
	if fired != 0 {
		t.Fatalf("signal fired before the final edge")
	}
	complete(t, m, 5)
	if fired != 1 {
		t.Fatalf("signal fired %d times, want 1", fired)
	}
	if got := m.Available(); len(got) != 0 {
		t.Fatalf("solved map still offers %v", got)
	}
	if !m.Solved() {
		t.Fatalf("map not flagged solved")
	}
	complete(t, m, 5, 1)
	if fired != 1 {
		t.Fatalf("signal re-fired: %d", fired)
	}
}

type fakeStore struct {
	ids     []int
	failAll bool
	marked  []int
}

func (f *fakeStore) Completed(ctx context.Context) ([]int, error) {
	if f.failAll {
		return nil, errors.New("disk gone")
	}
	return f.ids, nil
}

func (f *fakeStore) MarkCompleted(ctx context.Context, id int) error {
	if f.failAll {
		return errors.New("disk gone")
	}
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeStore) Reset(ctx context.Context) error { return nil }

func TestLoadRehydrates(t *testing.T) {
	fired := 0
	store := &fakeStore{ids: []int{1, 2, 3, 4, 5, 99}}
	m := New(DefaultConnections(), store, func() { fired++ }, nil)
	m.Load(context.Background())

	if !m.Solved() {
		t.Fatalf("loaded complete state not solved")
	}
	// Rehydration must not re-fire the one-time completion signal.
	if fired != 0 {
		t.Fatalf("signal fired %d times during load", fired)
	}
	if got := m.Completed(); len(got) != 5 {
		t.Fatalf("Completed() = %v, unknown id not dropped", got)
	}
}

func TestLoadFailureDegradesToEmpty(t *testing.T) {
	m := New(DefaultConnections(), &fakeStore{failAll: true}, nil, nil)
	m.Load(context.Background())
	if got := m.Available(); len(got) != 2 {
		t.Fatalf("Available() after failed load = %v, want the two roots", got)
	}
}

func TestCompletePersists(t *testing.T) {
	store := &fakeStore{}
	m := New(DefaultConnections(), store, nil, nil)
	complete(t, m, 1, 1)
	if len(store.marked) != 1 || store.marked[0] != 1 {
		t.Fatalf("store.marked = %v, want a single 1", store.marked)
	}
}
