package adminmode

import (
	"errors"
	"testing"
	"time"
)

func newTestGate(start time.Time) (*Gate, *time.Time) {
	gate := NewGate()
	current := start
	gate.now = func() time.Time { return current }
	return gate, &current
}

func TestFiveQuickTapsActivate(t *testing.T) {
	gate, clock := newTestGate(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	var st *TapState
	var err error
	for i := 0; i < 5; i++ {
		*clock = clock.Add(500 * time.Millisecond)
		st, err = gate.Tap("session-a")
		if err != nil {
			t.Fatalf("Tap: %v", err)
		}
	}
	if !st.Unlocked || !st.Active {
		t.Fatalf("expected active admin mode after 5 taps, got %+v", st)
	}
	if st.Taps != 0 {
		t.Fatalf("expected counter reset on the 5th tap, got %d", st.Taps)
	}
	if !gate.Active("session-a") {
		t.Fatal("expected session active")
	}
}

func TestSlowTapRestartsSequence(t *testing.T) {
	gate, clock := newTestGate(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 4; i++ {
		*clock = clock.Add(time.Second)
		if _, err := gate.Tap("session-a"); err != nil {
			t.Fatalf("Tap: %v", err)
		}
	}

	// Gap beyond the window: the fifth tap counts as the first of a new
	// sequence.
	*clock = clock.Add(3 * time.Second)
	st, err := gate.Tap("session-a")
	if err != nil {
		t.Fatalf("Tap: %v", err)
	}
	if st.Taps != 1 || st.Unlocked {
		t.Fatalf("expected restarted sequence, got %+v", st)
	}
}

func TestEnterRequiresUnlock(t *testing.T) {
	gate, _ := newTestGate(time.Now())

	if _, err := gate.Enter("session-a"); !errors.Is(err, ErrGateLocked) {
		t.Fatalf("expected ErrGateLocked, got %v", err)
	}
}

func TestExitAndReenterWithoutRetapping(t *testing.T) {
	gate, clock := newTestGate(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		*clock = clock.Add(time.Second)
		if _, err := gate.Tap("session-a"); err != nil {
			t.Fatalf("Tap: %v", err)
		}
	}
	if !gate.Active("session-a") {
		t.Fatal("expected active admin mode after the tap sequence")
	}

	gate.Exit("session-a")
	if gate.Active("session-a") {
		t.Fatal("expected inactive after exit")
	}

	// Unlock survives exit; re-entry needs no new taps.
	st, err := gate.Enter("session-a")
	if err != nil {
		t.Fatalf("re-enter after exit: %v", err)
	}
	if !st.Active {
		t.Fatalf("expected active after re-entry, got %+v", st)
	}
}

func TestAdminRoleEntersWithoutTaps(t *testing.T) {
	gate, _ := newTestGate(time.Now())

	st, err := gate.EnterPrivileged("session-a")
	if err != nil {
		t.Fatalf("EnterPrivileged: %v", err)
	}
	if !st.Unlocked || !st.Active {
		t.Fatalf("expected active admin mode with zero taps, got %+v", st)
	}
	if !gate.Active("session-a") {
		t.Fatal("expected session active")
	}

	// Exit and role-based re-entry still work without any taps.
	gate.Exit("session-a")
	if _, err := gate.Enter("session-a"); err != nil {
		t.Fatalf("re-enter after privileged unlock: %v", err)
	}
}

func TestGateIsPerSession(t *testing.T) {
	gate, clock := newTestGate(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		*clock = clock.Add(time.Second)
		if _, err := gate.Tap("session-a"); err != nil {
			t.Fatalf("Tap: %v", err)
		}
	}

	if _, err := gate.Enter("session-b"); !errors.Is(err, ErrGateLocked) {
		t.Fatalf("expected session-b locked, got %v", err)
	}
}

func TestClearWipesState(t *testing.T) {
	gate, clock := newTestGate(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		*clock = clock.Add(time.Second)
		if _, err := gate.Tap("session-a"); err != nil {
			t.Fatalf("Tap: %v", err)
		}
	}
	if _, err := gate.Enter("session-a"); err != nil {
		t.Fatalf("Enter: %v", err)
	}

	gate.Clear("session-a")

	if gate.Active("session-a") {
		t.Fatal("expected cleared session to be inactive")
	}
	if _, err := gate.Enter("session-a"); !errors.Is(err, ErrGateLocked) {
		t.Fatalf("expected cleared session to be locked, got %v", err)
	}
}
