package duration

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Timer errors.
var (
	ErrTimerNotFound = errors.New("timer not found")
	ErrInvalidSpan   = errors.New("invalid timer span")
)

// Timer span limits.
var (
	// MinSpan is the minimum allowed countdown span (1 second).
	MinSpan = Second

	// MaxSpan is the maximum allowed countdown span (24 hours).
	MaxSpan = Day
)

// accuracyAbsolute is the minimum timer accuracy.
var accuracyAbsolute = Second

// Timer represents an active countdown timer.
type Timer struct {
	// Name identifies this timer within its Manager.
	Name string

	// ID distinguishes this arming from earlier timers of the same name.
	ID uuid.UUID

	// Start is when the countdown began.
	Start time.Time

	// Span is the countdown length.
	Span Duration

	// Value is handed to the expiry callback unchanged.
	Value any

	// timer is the Go timer for automatic expiry
	timer *time.Timer
}

// ExpiresAt returns when the timer will expire.
func (t *Timer) ExpiresAt() time.Time {
	std, _ := t.Span.Std()
	return t.Start.Add(std)
}

// Remaining returns the span left until expiry, clamped at Zero.
func (t *Timer) Remaining() Duration {
	remaining := t.Span.SaturatingSub(FromStd(time.Since(t.Start)))
	if remaining.IsNegative() {
		return Zero
	}
	return remaining
}

// IsExpired reports whether the countdown has run out.
func (t *Timer) IsExpired() bool {
	return !t.Remaining().IsPositive()
}

// Manager manages named countdown timers.
//
// Arming a name that already has a timer replaces it; the superseded
// timer never fires. Expiry callbacks run outside the manager's lock.
type Manager struct {
	mu sync.RWMutex

	// Active timers by name
	timers map[string]*Timer

	// Callback when a timer expires
	onExpiry func(name string, value any)
}

// NewManager creates a new timer manager.
func NewManager() *Manager {
	return &Manager{
		timers: make(map[string]*Timer),
	}
}

// Arm creates or replaces a countdown timer. The countdown starts
// immediately. Returns the arming ID, or an error if the span is
// outside [MinSpan, MaxSpan].
func (m *Manager) Arm(name string, span Duration, value any) (uuid.UUID, error) {
	if span.Cmp(MinSpan) < 0 || span.Cmp(MaxSpan) > 0 {
		return uuid.Nil, ErrInvalidSpan
	}
	std, ok := span.Std()
	if !ok {
		return uuid.Nil, ErrInvalidSpan
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Cancel existing timer if any
	if existing, exists := m.timers[name]; exists {
		if existing.timer != nil {
			existing.timer.Stop()
		}
	}

	id := uuid.New()
	timer := &Timer{
		Name:  name,
		ID:    id,
		Start: time.Now(),
		Span:  span,
		Value: value,
	}

	// Set up automatic expiry. The ID guards against a stale expiry
	// firing after the timer has been replaced.
	timer.timer = time.AfterFunc(std, func() {
		m.expireTimer(name, id)
	})

	m.timers[name] = timer
	return id, nil
}

// Cancel cancels a timer without triggering the expiry callback.
func (m *Manager) Cancel(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	timer, exists := m.timers[name]
	if !exists {
		return ErrTimerNotFound
	}

	if timer.timer != nil {
		timer.timer.Stop()
	}
	delete(m.timers, name)
	return nil
}

// CancelAll cancels every active timer without triggering callbacks.
func (m *Manager) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, timer := range m.timers {
		if timer.timer != nil {
			timer.timer.Stop()
		}
		delete(m.timers, name)
	}
}

// Get returns timer info by name, or nil if not armed.
func (m *Manager) Get(name string) *Timer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if timer, exists := m.timers[name]; exists {
		// Return a copy to avoid race conditions
		return &Timer{
			Name:  timer.Name,
			ID:    timer.ID,
			Start: timer.Start,
			Span:  timer.Span,
			Value: timer.Value,
		}
	}
	return nil
}

// Count returns the number of active timers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.timers)
}

// OnExpiry sets the callback for timer expiry. The callback receives
// the timer name and the value passed to Arm.
func (m *Manager) OnExpiry(fn func(name string, value any)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpiry = fn
}

// expireTimer handles timer expiry.
func (m *Manager) expireTimer(name string, id uuid.UUID) {
	m.mu.Lock()

	timer, exists := m.timers[name]
	if !exists || timer.ID != id {
		// Replaced or cancelled after this expiry was scheduled.
		m.mu.Unlock()
		return
	}

	value := timer.Value
	delete(m.timers, name)

	callback := m.onExpiry

	m.mu.Unlock()

	// Call callback outside lock
	if callback != nil {
		callback(name, value)
	}
}

// Accuracy returns the expected timer accuracy for a span:
// +/- 1% of the span or +/- 1 second, whichever is greater.
func Accuracy(span Duration) Duration {
	percent, ok := span.Abs().CheckedDiv(100)
	if !ok || percent.Cmp(accuracyAbsolute) < 0 {
		return accuracyAbsolute
	}
	return percent
}
