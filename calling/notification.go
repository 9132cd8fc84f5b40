package calling

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"transferadmin/models"
)

const DefaultCountdown = 30

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRinging  Phase = "ringing"
	PhaseAccepted Phase = "accepted"
	PhaseDeclined Phase = "declined"
	PhaseTimedOut Phase = "timed_out"
)

type Options struct {
	Countdown int
	Clock     Clock
	OnAccept  func(models.Caller)
	// OnDecline runs for an explicit decline and for a countdown that reached zero.
	OnDecline func(models.Caller)
	OnTick    func(remaining int)
}

// Snapshot is what the dashboard shows for a notification.
type Snapshot struct {
	ID        string        `json:"id"`
	Caller    models.Caller `json:"caller"`
	Phase     Phase         `json:"phase"`
	Remaining int           `json:"remaining"`
	Visible   bool          `json:"visible"`
}

// Notification is one incoming call: idle, then ringing with a countdown, then
// accepted, declined or timed out. Exactly one callback ever runs.
type Notification struct {
	mu        sync.Mutex
	id        string
	caller    models.Caller
	phase     Phase
	remaining int
	clock     Clock
	timer     Timer
	opts      Options
}

func NewNotification(caller models.Caller, opts Options) *Notification {
	if opts.Countdown <= 0 {
		opts.Countdown = DefaultCountdown
	}
	if opts.Clock == nil {
		opts.Clock = RealClock
	}
	return &Notification{
		id:        uuid.NewString(),
		caller:    caller,
		phase:     PhaseIdle,
		remaining: opts.Countdown,
		clock:     opts.Clock,
		opts:      opts,
	}
}

func (n *Notification) ID() string {
	return n.id
}

// Ring starts the countdown. It is a no-op unless the notification is idle.
func (n *Notification) Ring() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.phase != PhaseIdle {
		return
	}
	n.phase = PhaseRinging
	n.schedule()
}

func (n *Notification) Accept() bool {
	return n.finish(PhaseAccepted)
}

func (n *Notification) Decline() bool {
	return n.finish(PhaseDeclined)
}

// Stop cancels the pending tick without running any callback.
func (n *Notification) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notification) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Snapshot{
		ID:        n.id,
		Caller:    n.caller,
		Phase:     n.phase,
		Remaining: n.remaining,
		Visible:   n.phase == PhaseRinging,
	}
}

// schedule must be called with n.mu held.
func (n *Notification) schedule() {
	n.timer = n.clock.AfterFunc(time.Second, n.tick)
}

func (n *Notification) tick() {
	n.mu.Lock()
	if n.phase != PhaseRinging {
		n.mu.Unlock()
		return
	}
	n.remaining--
	remaining := n.remaining
	if remaining > 0 {
		n.schedule()
		n.mu.Unlock()
		if n.opts.OnTick != nil {
			n.opts.OnTick(remaining)
		}
		return
	}
	n.phase = PhaseTimedOut
	n.timer = nil
	n.mu.Unlock()

	if n.opts.OnTick != nil {
		n.opts.OnTick(0)
	}
	if n.opts.OnDecline != nil {
		n.opts.OnDecline(n.caller)
	}
}

func (n *Notification) finish(to Phase) bool {
	n.mu.Lock()
	if n.phase != PhaseRinging {
		n.mu.Unlock()
		return false
	}
	n.phase = to
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.mu.Unlock()

	cb := n.opts.OnDecline
	if to == PhaseAccepted {
		cb = n.opts.OnAccept
	}
	if cb != nil {
		cb(n.caller)
	}
	return true
}
