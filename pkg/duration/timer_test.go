package duration

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTimerBasic(t *testing.T) {
	timer := &Timer{
		Name:  "pause",
		ID:    uuid.New(),
		Start: time.Now(),
		Span:  Seconds(60),
		Value: int64(5000000),
	}

	if timer.IsExpired() {
		t.Error("Timer should not be expired immediately")
	}

	remaining := timer.Remaining()
	if remaining.Cmp(Seconds(59)) < 0 || remaining.Cmp(Seconds(60)) > 0 {
		t.Errorf("Remaining() = %v, expected ~60s", remaining)
	}

	std, ok := timer.Span.Std()
	if !ok {
		t.Fatal("span should fit in time.Duration")
	}
	expectedExpiry := timer.Start.Add(std)
	if timer.ExpiresAt() != expectedExpiry {
		t.Errorf("ExpiresAt() = %v, want %v", timer.ExpiresAt(), expectedExpiry)
	}
}

func TestTimerExpired(t *testing.T) {
	// Create timer that's already expired
	timer := &Timer{
		Name:  "pause",
		Start: time.Now().Add(-2 * time.Second),
		Span:  Second,
		Value: int64(5000000),
	}

	if !timer.IsExpired() {
		t.Error("Timer should be expired")
	}

	if !timer.Remaining().IsZero() {
		t.Errorf("Remaining() = %v, want 0 for expired timer", timer.Remaining())
	}
}

func TestManagerArm(t *testing.T) {
	m := NewManager()

	id, err := m.Arm("limit", Seconds(5), int64(5000000))
	if err != nil {
		t.Fatalf("Arm() error = %v", err)
	}
	if id == uuid.Nil {
		t.Error("Arm() returned the nil ID")
	}

	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}

	timer := m.Get("limit")
	if timer == nil {
		t.Fatal("Get() returned nil")
	}
	if timer.Value != int64(5000000) {
		t.Errorf("Timer value = %v, want 5000000", timer.Value)
	}
	if timer.Span != Seconds(5) {
		t.Errorf("Timer span = %v, want 5s", timer.Span)
	}
}

func TestManagerInvalidSpan(t *testing.T) {
	m := NewManager()

	// Too short
	if _, err := m.Arm("limit", Milliseconds(500), nil); err != ErrInvalidSpan {
		t.Errorf("Arm with too short span error = %v, want ErrInvalidSpan", err)
	}

	// Negative
	if _, err := m.Arm("limit", Seconds(-5), nil); err != ErrInvalidSpan {
		t.Errorf("Arm with negative span error = %v, want ErrInvalidSpan", err)
	}

	// Too long
	if _, err := m.Arm("limit", Hours(25), nil); err != ErrInvalidSpan {
		t.Errorf("Arm with too long span error = %v, want ErrInvalidSpan", err)
	}

	// Valid bounds
	if _, err := m.Arm("at-min", MinSpan, nil); err != nil {
		t.Errorf("Arm with MinSpan error = %v", err)
	}
	if _, err := m.Arm("at-max", MaxSpan, nil); err != nil {
		t.Errorf("Arm with MaxSpan error = %v", err)
	}
}

func TestManagerReplacement(t *testing.T) {
	m := NewManager()

	first, err := m.Arm("limit", Seconds(10), int64(5000000))
	if err != nil {
		t.Fatalf("Arm() error = %v", err)
	}

	second, err := m.Arm("limit", Seconds(20), int64(3000000))
	if err != nil {
		t.Fatalf("Arm() error = %v", err)
	}

	if first == second {
		t.Error("replacement should produce a new arming ID")
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d after replacement, want 1", m.Count())
	}

	timer := m.Get("limit")
	if timer == nil {
		t.Fatal("Get() returned nil")
	}
	if timer.Value != int64(3000000) {
		t.Errorf("Timer value = %v after replacement, want 3000000", timer.Value)
	}
	if timer.Span != Seconds(20) {
		t.Errorf("Timer span = %v after replacement, want 20s", timer.Span)
	}
}

func TestManagerCancel(t *testing.T) {
	m := NewManager()

	if _, err := m.Arm("limit", Seconds(5), nil); err != nil {
		t.Fatalf("Arm() error = %v", err)
	}

	if err := m.Cancel("limit"); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d after cancel, want 0", m.Count())
	}

	// Cancel non-existent timer
	if err := m.Cancel("limit"); err != ErrTimerNotFound {
		t.Errorf("Cancel non-existent error = %v, want ErrTimerNotFound", err)
	}
}

func TestManagerCancelAll(t *testing.T) {
	m := NewManager()

	m.Arm("limit", Seconds(5), nil)
	m.Arm("setpoint", Seconds(5), nil)
	m.Arm("pause", Seconds(5), nil)

	if m.Count() != 3 {
		t.Fatalf("Count() = %d before cancel, want 3", m.Count())
	}

	m.CancelAll()

	if m.Count() != 0 {
		t.Errorf("Count() = %d after CancelAll, want 0", m.Count())
	}
	if m.Get("limit") != nil {
		t.Error("timer should be cancelled")
	}
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager()

	var mu sync.Mutex
	var expiredName string
	var expiredValue any
	var expiryCalled bool

	m.OnExpiry(func(name string, value any) {
		mu.Lock()
		expiryCalled = true
		expiredName = name
		expiredValue = value
		mu.Unlock()
	})

	if _, err := m.Arm("limit", MinSpan, int64(7)); err != nil {
		t.Fatalf("Arm() error = %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		mu.Lock()
		called := expiryCalled
		mu.Unlock()
		if called {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expiry callback not invoked")
		}
		time.Sleep(20 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if expiredName != "limit" {
		t.Errorf("expired name = %q, want %q", expiredName, "limit")
	}
	if expiredValue != int64(7) {
		t.Errorf("expired value = %v, want 7", expiredValue)
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d after expiry, want 0", m.Count())
	}
}

func TestManagerStaleExpiryIgnored(t *testing.T) {
	m := NewManager()

	var mu sync.Mutex
	expiries := 0
	m.OnExpiry(func(string, any) {
		mu.Lock()
		expiries++
		mu.Unlock()
	})

	firstID, err := m.Arm("limit", MinSpan, nil)
	if err != nil {
		t.Fatalf("Arm() error = %v", err)
	}

	// Replace before the first timer fires; the replacement holds the
	// name for an hour, so any expiry seen must be stale.
	if _, err := m.Arm("limit", Hours(1), nil); err != nil {
		t.Fatalf("Arm() error = %v", err)
	}

	// Simulate the superseded timer firing late.
	m.expireTimer("limit", firstID)

	mu.Lock()
	defer mu.Unlock()
	if expiries != 0 {
		t.Errorf("stale expiry invoked the callback %d times", expiries)
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (replacement still armed)", m.Count())
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		span Duration
		want Duration
	}{
		{Seconds(30), Second},       // 1% of 30s is below the 1s floor
		{Seconds(100), Second},      // exactly at the floor
		{Minutes(10), Seconds(6)},   // 1% of 600s
		{Hours(24), Seconds(864)},   // 1% of a day
		{Seconds(-200), Seconds(2)}, // accuracy of a negative span
	}
	for _, tt := range tests {
		if got := Accuracy(tt.span); got != tt.want {
			t.Errorf("Accuracy(%v) = %v, want %v", tt.span, got, tt.want)
		}
	}
}
