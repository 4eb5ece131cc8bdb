package ratelimit

import (
	"testing"
	"time"
)

func TestPacerSleepsPerWait(t *testing.T) {
	p := NewPacer(10 * time.Millisecond)
	defer p.Stop()

	start := time.Now()
	p.Wait()
	p.Wait()
	elapsed := time.Since(start)

	if elapsed < 15*time.Millisecond {
		t.Fatalf("two waits finished in %v, expected at least ~20ms", elapsed)
	}
}

func TestSlowCycleStillWaitsFullInterval(t *testing.T) {
	p := NewPacer(50 * time.Millisecond)
	defer p.Stop()

	p.Wait()

	// Simulate a cycle that takes longer than the interval; the next wait
	// must still sleep a full interval rather than return immediately.
	time.Sleep(120 * time.Millisecond)

	start := time.Now()
	p.Wait()
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("Wait returned after %v, expected a full interval sleep", elapsed)
	}
}
