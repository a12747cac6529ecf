package timer

import (
	"testing"
	"time"
)

func TestLaunchCountsDown(t *testing.T) {
	tm := Launch(10, 0x600)

	var samples [5]byte
	for i := range samples {
		time.Sleep(40 * time.Millisecond)
		samples[i] = tm.Count()
	}

	for i := 1; i < len(samples); i++ {
		if samples[i] > samples[i-1] {
			t.Fatalf("count increased: samples[%d]=%d > samples[%d]=%d", i, samples[i], i-1, samples[i-1])
		}
	}
	if last := samples[len(samples)-1]; last >= 10 {
		t.Fatalf("count never decreased: last sample = %d, started at 10", last)
	}
}

func TestKillStopsGoroutine(t *testing.T) {
	tm := Launch(10, 0x600)
	tm.Kill()
	time.Sleep(50 * time.Millisecond)

	select {
	case <-tm.done:
	default:
		t.Fatal("timer goroutine did not exit after Kill")
	}
}

func TestExpiresAtZero(t *testing.T) {
	tm := Launch(1, 0x600)
	time.Sleep(60 * time.Millisecond)
	if !tm.Expired() {
		t.Fatalf("expected timer to expire, count=%d", tm.Count())
	}
}

func TestHandlerIsPreserved(t *testing.T) {
	tm := Launch(2, 0x0ABC)
	if got := tm.Handler(); got != 0x0ABC {
		t.Fatalf("Handler() = %#x, want %#x", got, 0x0ABC)
	}
	tm.Kill()
}

func TestStopSuspendsCountdown(t *testing.T) {
	tm := Launch(5, 0x600)
	time.Sleep(20 * time.Millisecond)
	tm.Stop()
	time.Sleep(20 * time.Millisecond)
	before := tm.Count()
	time.Sleep(60 * time.Millisecond)
	after := tm.Count()
	if after != before {
		t.Fatalf("count moved while stopped: before=%d after=%d", before, after)
	}
	tm.Resume()
	tm.Kill()
}
