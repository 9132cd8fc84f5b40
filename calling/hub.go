package calling

import (
	"errors"
	"log/slog"
	"sync"

	"transferadmin/models"
)

var (
	ErrBusy   = errors.New("another call is already ringing")
	ErrNoCall = errors.New("no such ringing call")
)

type HubOptions struct {
	Countdown int
	Clock     Clock
	Logger    *slog.Logger
	// OnTimeout runs when a call rings out without an answer.
	OnTimeout func(models.Caller)
}

// Hub holds the single call currently ringing on the dashboard.
type Hub struct {
	mu      sync.Mutex
	current *Notification
	opts    HubOptions
}

func NewHub(opts HubOptions) *Hub {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Hub{opts: opts}
}

// Incoming starts ringing for caller.
func (h *Hub) Incoming(caller models.Caller) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil && h.current.Snapshot().Phase == PhaseRinging {
		return Snapshot{}, ErrBusy
	}

	var n *Notification
	n = NewNotification(caller, Options{
		Countdown: h.opts.Countdown,
		Clock:     h.opts.Clock,
		OnAccept: func(c models.Caller) {
			h.opts.Logger.Info("call accepted", "call_id", n.ID(), "caller_id", c.ID)
		},
		OnDecline: func(c models.Caller) {
			if n.Snapshot().Phase == PhaseTimedOut {
				h.opts.Logger.Info("call timed out", "call_id", n.ID(), "caller_id", c.ID)
				if h.opts.OnTimeout != nil {
					h.opts.OnTimeout(c)
				}
				return
			}
			h.opts.Logger.Info("call declined", "call_id", n.ID(), "caller_id", c.ID)
		},
	})
	h.current = n
	n.Ring()
	return n.Snapshot(), nil
}

// Current returns the visible call, if any.
func (h *Hub) Current() (Snapshot, bool) {
	h.mu.Lock()
	n := h.current
	h.mu.Unlock()

	if n == nil {
		return Snapshot{}, false
	}
	s := n.Snapshot()
	return s, s.Visible
}

func (h *Hub) Accept(id string) (models.Caller, error) {
	return h.resolve(id, (*Notification).Accept)
}

func (h *Hub) Decline(id string) (models.Caller, error) {
	return h.resolve(id, (*Notification).Decline)
}

// Close stops any pending countdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != nil {
		h.current.Stop()
		h.current = nil
	}
}

func (h *Hub) resolve(id string, fn func(*Notification) bool) (models.Caller, error) {
	h.mu.Lock()
	n := h.current
	h.mu.Unlock()

	if n == nil || n.ID() != id || !fn(n) {
		return models.Caller{}, ErrNoCall
	}
	return n.Snapshot().Caller, nil
}
