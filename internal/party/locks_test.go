package party

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockEntryEvictedOnRelease(t *testing.T) {
	l := newCodeLocks()

	unlock := l.lock("ABC123")
	l.mu.Lock()
	assert.Len(t, l.locks, 1)
	l.mu.Unlock()

	unlock()

	l.mu.Lock()
	assert.Empty(t, l.locks, "released locks must not accumulate")
	l.mu.Unlock()
}

func TestLockSerializesPerCode(t *testing.T) {
	l := newCodeLocks()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("ABC123")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	l.mu.Lock()
	assert.Empty(t, l.locks)
	l.mu.Unlock()
}

func TestLockIndependentCodes(t *testing.T) {
	l := newCodeLocks()

	unlockA := l.lock("AAA111")
	unlockB := l.lock("BBB222")

	l.mu.Lock()
	assert.Len(t, l.locks, 2)
	l.mu.Unlock()

	unlockA()
	unlockB()

	l.mu.Lock()
	assert.Empty(t, l.locks)
	l.mu.Unlock()
}
