package calling

import (
	"testing"

	"transferadmin/models"
)

var caller = models.Caller{ID: "c-1", Name: "Driver Ravi"}

func TestCountdownTimesOutAndDeclinesOnce(t *testing.T) {
	clock := &fakeClock{}
	accepts, declines := 0, 0
	var ticks []int

	n := NewNotification(caller, Options{
		Clock:     clock,
		OnAccept:  func(models.Caller) { accepts++ },
		OnDecline: func(models.Caller) { declines++ },
		OnTick:    func(r int) { ticks = append(ticks, r) },
	})
	if s := n.Snapshot(); s.Phase != PhaseIdle || s.Remaining != 30 || s.Visible {
		t.Fatalf("unexpected initial snapshot %+v", s)
	}

	n.Ring()
	fired := 0
	for clock.Tick() {
		fired++
		if fired > 100 {
			t.Fatalf("countdown never stopped")
		}
	}

	if fired != 30 {
		t.Fatalf("expected 30 ticks, got %d", fired)
	}
	if declines != 1 || accepts != 0 {
		t.Fatalf("expected one decline and no accept, got declines=%d accepts=%d", declines, accepts)
	}
	if len(ticks) != 30 || ticks[0] != 29 || ticks[29] != 0 {
		t.Fatalf("unexpected ticks %v", ticks)
	}
	s := n.Snapshot()
	if s.Phase != PhaseTimedOut || s.Visible || s.Remaining != 0 {
		t.Fatalf("unexpected final snapshot %+v", s)
	}

	// late answers are ignored
	if n.Accept() || n.Decline() {
		t.Fatalf("answers after timeout must be rejected")
	}
	if declines != 1 || accepts != 0 {
		t.Fatalf("callbacks ran again after timeout")
	}
}

func TestAcceptStopsCountdown(t *testing.T) {
	clock := &fakeClock{}
	accepts, declines := 0, 0
	n := NewNotification(caller, Options{
		Countdown: 5,
		Clock:     clock,
		OnAccept:  func(models.Caller) { accepts++ },
		OnDecline: func(models.Caller) { declines++ },
	})
	n.Ring()
	clock.Tick()
	clock.Tick()

	if !n.Accept() {
		t.Fatalf("Accept should succeed while ringing")
	}
	if n.Snapshot().Visible {
		t.Fatalf("notification must hide on accept")
	}
	if clock.Tick() {
		t.Fatalf("no tick may remain after accept")
	}
	if n.Decline() {
		t.Fatalf("decline after accept must be rejected")
	}
	if accepts != 1 || declines != 0 {
		t.Fatalf("expected accepts=1 declines=0, got %d/%d", accepts, declines)
	}
	if r := n.Snapshot().Remaining; r != 3 {
		t.Fatalf("expected remaining 3, got %d", r)
	}
}

func TestDeclineRunsCallbackOnce(t *testing.T) {
	clock := &fakeClock{}
	declines := 0
	n := NewNotification(caller, Options{Clock: clock, OnDecline: func(models.Caller) { declines++ }})
	n.Ring()

	if !n.Decline() || n.Decline() {
		t.Fatalf("expected exactly one successful decline")
	}
	if declines != 1 || n.Snapshot().Phase != PhaseDeclined {
		t.Fatalf("unexpected state declines=%d phase=%s", declines, n.Snapshot().Phase)
	}
}

func TestStopClearsTimerWithoutCallbacks(t *testing.T) {
	clock := &fakeClock{}
	calls := 0
	n := NewNotification(caller, Options{
		Clock:     clock,
		OnAccept:  func(models.Caller) { calls++ },
		OnDecline: func(models.Caller) { calls++ },
	})
	n.Ring()
	n.Stop()

	if clock.Tick() {
		t.Fatalf("timer should be cleared on Stop")
	}
	if calls != 0 {
		t.Fatalf("Stop must not run callbacks")
	}
}

func TestAnswerBeforeRingIsRejected(t *testing.T) {
	n := NewNotification(caller, Options{Clock: &fakeClock{}})
	if n.Accept() || n.Decline() {
		t.Fatalf("idle notification cannot be answered")
	}
}
