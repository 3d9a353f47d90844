package party

import "sync"

// codeLocks serializes all mutating operations per party code. Each code
// gets its own mutex, so a slow party never blocks the others. Entries are
// reference counted and removed once the last holder releases, keeping the
// registry bounded by the number of in-flight operations.
type codeLocks struct {
	mu    sync.Mutex
	locks map[string]*codeLock
}

type codeLock struct {
	mu   sync.Mutex
	refs int
}

func newCodeLocks() *codeLocks {
	return &codeLocks{locks: make(map[string]*codeLock)}
}

// lock acquires the mutex for code and returns its unlock func.
func (l *codeLocks) lock(code string) func() {
	l.mu.Lock()
	entry, ok := l.locks[code]
	if !ok {
		entry = &codeLock{}
		l.locks[code] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, code)
		}
		l.mu.Unlock()
	}
}
