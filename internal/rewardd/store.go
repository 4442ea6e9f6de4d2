package rewardd

import (
	"sync"
	"time"
)

// CatchRecord is one landed fish, as persisted.
type CatchRecord struct {
	Angler     string
	Fish       string
	Rarity     string
	Points     int
	ReactionMs int
	Auto       bool
	CaughtAt   time.Time
}

// Store persists angler standing across restarts. Implementations:
// MemoryStore for tests and single-process runs, GormStore for Postgres.
type Store interface {
	// AddPoints credits delta and returns the new lifetime total.
	AddPoints(angler string, delta int) (int, error)
	// Points returns the lifetime total without changing it.
	Points(angler string) (int, error)
	// AutofishUsed returns how many quota units the angler burned on the
	// given UTC day (format 2006-01-02).
	AutofishUsed(angler, day string) (int, error)
	// BumpAutofish burns one quota unit and returns the new used count.
	BumpAutofish(angler, day string) (int, error)
	// RecordCatch appends one catch to the angler's history.
	RecordCatch(rec CatchRecord) error
	// RecentCatches returns up to n catches, newest first.
	RecentCatches(angler string, n int) ([]CatchRecord, error)
}

// MemoryStore keeps everything in maps. State is lost on exit, which is
// fine for the embedded single-player mode and for tests.
type MemoryStore struct {
	mu       sync.Mutex
	points   map[string]int
	autofish map[string]int // key: angler + "|" + day
	catches  map[string][]CatchRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		points:   make(map[string]int),
		autofish: make(map[string]int),
		catches:  make(map[string][]CatchRecord),
	}
}

func (m *MemoryStore) AddPoints(angler string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points[angler] += delta
	return m.points[angler], nil
}

func (m *MemoryStore) Points(angler string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.points[angler], nil
}

func (m *MemoryStore) AutofishUsed(angler, day string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autofish[angler+"|"+day], nil
}

func (m *MemoryStore) BumpAutofish(angler, day string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := angler + "|" + day
	m.autofish[key]++
	return m.autofish[key], nil
}

func (m *MemoryStore) RecordCatch(rec CatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catches[rec.Angler] = append(m.catches[rec.Angler], rec)
	return nil
}

func (m *MemoryStore) RecentCatches(angler string, n int) ([]CatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.catches[angler]
	if n > len(all) {
		n = len(all)
	}
	out := make([]CatchRecord, 0, n)
	for i := len(all) - 1; i >= len(all)-n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
