package keylock

import (
	"sync"
	"testing"
)

func TestSerializesSameKey(t *testing.T) {
	locks := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("tenant#a")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected 50 serialized increments, got %d", counter)
	}
}

func TestIndependentKeysDoNotBlock(t *testing.T) {
	locks := New()

	unlockA := locks.Lock("tenant#a")
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("tenant#b")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}

func TestEntriesAreReleased(t *testing.T) {
	locks := New()
	unlock := locks.Lock("tenant#a")
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.locks) != 0 {
		t.Fatalf("expected no retained lock entries, got %d", len(locks.locks))
	}
}
