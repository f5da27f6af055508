package session

import (
	"sync"

	"github.com/kamstrup/intmap"

	"github.com/plus3/blockfall/tetris"
)

// Tally counts what happened over a session.
type Tally struct {
	catalog *tetris.Catalog

	mu      sync.Mutex
	spawns  *intmap.Map[int, int64]
	clears  *intmap.Map[int, int64]
	actions *intmap.Map[int, int64]
	widest  int
}

// TallySnapshot is a copy of the counters.
type TallySnapshot struct {
	// Spawns counts spawned pieces by label.
	Spawns map[string]int64
	// Clears counts clear events by the number of rows removed at once.
	Clears map[int]int64
	// Actions counts processed events by name.
	Actions map[string]int64
}

func newTally(catalog *tetris.Catalog) *Tally {
	return &Tally{
		catalog: catalog,
		spawns:  intmap.New[int, int64](catalog.Len()),
		clears:  intmap.New[int, int64](4),
		actions: intmap.New[int, int64](int(Resume) + 1),
	}
}

func increment(m *intmap.Map[int, int64], key int) {
	n, _ := m.Get(key)
	m.Put(key, n+1)
}

func (t *Tally) spawned(p *tetris.Piece) {
	i := t.catalog.Index(p)
	if i < 0 {
		return
	}
	t.mu.Lock()
	increment(t.spawns, i)
	t.mu.Unlock()
}

func (t *Tally) cleared(lines int) {
	if lines <= 0 {
		return
	}
	t.mu.Lock()
	increment(t.clears, lines)
	t.widest = max(t.widest, lines)
	t.mu.Unlock()
}

func (t *Tally) processed(a Action) {
	t.mu.Lock()
	increment(t.actions, int(a))
	t.mu.Unlock()
}

// Snapshot copies the counters into plain maps.
func (t *Tally) Snapshot() TallySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := TallySnapshot{
		Spawns:  make(map[string]int64, t.spawns.Len()),
		Clears:  make(map[int]int64, t.clears.Len()),
		Actions: make(map[string]int64, t.actions.Len()),
	}
	for i, p := range t.catalog.Pieces() {
		if n, ok := t.spawns.Get(i); ok {
			s.Spawns[p.Label] = n
		}
	}
	for lines := 1; lines <= t.widest; lines++ {
		if n, ok := t.clears.Get(lines); ok {
			s.Clears[lines] = n
		}
	}
	for a := Tick; a <= Resume; a++ {
		if n, ok := t.actions.Get(int(a)); ok {
			s.Actions[a.String()] = n
		}
	}
	return s
}

// TotalSpawns is the number of pieces that entered play.
func (s TallySnapshot) TotalSpawns() int64 {
	var total int64
	for _, n := range s.Spawns {
		total += n
	}
	return total
}
