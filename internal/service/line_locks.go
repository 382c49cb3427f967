package service

import (
	"sync"

	"github.com/google/uuid"
)

// lineLocks hands out one mutex per inventory line so adjustments to the same
// line serialize in-process while different lines proceed in parallel.
// Entries are never evicted; the key space is bounded by the number of lines.
type lineLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newLineLocks() *lineLocks {
	return &lineLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *lineLocks) get(id uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// lock acquires the line's mutex and returns its release func.
func (l *lineLocks) lock(id uuid.UUID) func() {
	m := l.get(id)
	m.Lock()
	return m.Unlock
}
