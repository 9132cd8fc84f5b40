package calling

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"transferadmin/models"
)

func newTestHub(clock Clock, onTimeout func(models.Caller)) *Hub {
	return NewHub(HubOptions{
		Countdown: 3,
		Clock:     clock,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnTimeout: onTimeout,
	})
}

func TestHubSingleRingingCall(t *testing.T) {
	h := newTestHub(&fakeClock{}, nil)

	snap, err := h.Incoming(caller)
	if err != nil {
		t.Fatalf("Incoming: %v", err)
	}
	if snap.Phase != PhaseRinging || snap.Remaining != 3 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	if _, err := h.Incoming(models.Caller{ID: "c-2"}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	cur, ok := h.Current()
	if !ok || cur.ID != snap.ID {
		t.Fatalf("expected current call %s, got %+v", snap.ID, cur)
	}

	if _, err := h.Accept("other-id"); !errors.Is(err, ErrNoCall) {
		t.Fatalf("expected ErrNoCall for unknown id, got %v", err)
	}
	got, err := h.Accept(snap.ID)
	if err != nil || got.ID != caller.ID {
		t.Fatalf("Accept: %+v %v", got, err)
	}
	if _, ok := h.Current(); ok {
		t.Fatalf("accepted call must no longer be visible")
	}

	// a new call may ring once the previous one is answered
	if _, err := h.Incoming(models.Caller{ID: "c-2"}); err != nil {
		t.Fatalf("Incoming after answer: %v", err)
	}
}

func TestHubTimeoutReportsOnce(t *testing.T) {
	clock := &fakeClock{}
	var timedOut []string
	h := newTestHub(clock, func(c models.Caller) { timedOut = append(timedOut, c.ID) })

	snap, _ := h.Incoming(caller)
	for clock.Tick() {
	}

	if len(timedOut) != 1 || timedOut[0] != caller.ID {
		t.Fatalf("expected one timeout report, got %v", timedOut)
	}
	if _, err := h.Decline(snap.ID); !errors.Is(err, ErrNoCall) {
		t.Fatalf("decline after timeout should fail, got %v", err)
	}
}

func TestHubExplicitDeclineIsNotATimeout(t *testing.T) {
	clock := &fakeClock{}
	timeouts := 0
	h := newTestHub(clock, func(models.Caller) { timeouts++ })

	snap, _ := h.Incoming(caller)
	if _, err := h.Decline(snap.ID); err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if timeouts != 0 {
		t.Fatalf("explicit decline must not be reported as timeout")
	}
	h.Close()
	if _, ok := h.Current(); ok {
		t.Fatalf("Close should drop the current call")
	}
}
