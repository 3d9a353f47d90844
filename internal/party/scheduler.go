package party

import (
	"sync"
	"time"
)

// schedule owns the per-party background timers: one question-advance timer
// and one host-grace timer per code, at most. Starting a timer for a code
// that already has one replaces it; timers never stack.
type schedule struct {
	mu       sync.Mutex
	question map[string]*questionTimer
	grace    map[string]*time.Timer
}

// questionTimer carries a mutable code cell so a pending countdown survives
// a party-code reset: the rename re-points the cell and the callback fires
// against the new code.
type questionTimer struct {
	mu    sync.Mutex
	code  string
	timer *time.Timer
}

func (t *questionTimer) currentCode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.code
}

func newSchedule() *schedule {
	return &schedule{
		question: make(map[string]*questionTimer),
		grace:    make(map[string]*time.Timer),
	}
}

func (s *schedule) startQuestion(code string, d time.Duration, fire func(code string)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.question[code]; ok {
		prev.timer.Stop()
	}
	qt := &questionTimer{code: code}
	qt.timer = time.AfterFunc(d, func() {
		fire(qt.currentCode())
	})
	s.question[code] = qt
}

func (s *schedule) cancelQuestion(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qt, ok := s.question[code]; ok {
		qt.timer.Stop()
		delete(s.question, code)
	}
}

// migrateQuestion re-keys a pending question timer after a code reset so
// the running countdown is not interrupted by the rename.
func (s *schedule) migrateQuestion(oldCode, newCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qt, ok := s.question[oldCode]
	if !ok {
		return
	}
	delete(s.question, oldCode)
	qt.mu.Lock()
	qt.code = newCode
	qt.mu.Unlock()
	s.question[newCode] = qt
}

func (s *schedule) startGrace(code string, d time.Duration, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.grace[code]; ok {
		prev.Stop()
	}
	s.grace[code] = time.AfterFunc(d, fire)
}

func (s *schedule) cancelGrace(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.grace[code]; ok {
		t.Stop()
		delete(s.grace, code)
	}
}

func (s *schedule) cancelAll(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qt, ok := s.question[code]; ok {
		qt.timer.Stop()
		delete(s.question, code)
	}
	if t, ok := s.grace[code]; ok {
		t.Stop()
		delete(s.grace, code)
	}
}
