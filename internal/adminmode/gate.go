package adminmode

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// tapsToUnlock is the number of consecutive taps that reveal the
	// admin-mode affordance.
	tapsToUnlock = 5
	// tapWindow is the maximum gap between consecutive taps. A slower tap
	// restarts the sequence.
	tapWindow = 2 * time.Second
)

// TapState is the gate view returned after each tap.
type TapState struct {
	Taps     int  `json:"taps"`
	Unlocked bool `json:"unlocked"`
	Active   bool `json:"active"`
}

type gateState struct {
	taps     int
	lastTap  time.Time
	unlocked bool
	active   bool
}

// Gate tracks the hidden tap sequence per session. The gate is a UI
// affordance, not an authorization boundary: every admin write is still
// checked against the caller's role server-side.
type Gate struct {
	mu    sync.Mutex
	state map[string]*gateState
	now   func() time.Time
}

// NewGate builds an in-memory tap gate.
func NewGate() *Gate {
	return &Gate{
		state: map[string]*gateState{},
		now:   time.Now,
	}
}

// Tap registers one tap for the session and reports the resulting state.
func (g *Gate) Tap(sessionID string) (*TapState, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	st, ok := g.state[sessionID]
	if !ok {
		st = &gateState{}
		g.state[sessionID] = st
	}

	if st.taps > 0 && now.Sub(st.lastTap) > tapWindow {
		st.taps = 0
	}
	st.taps++
	st.lastTap = now

	// Completing the sequence activates admin mode immediately and resets
	// the counter. The unlock sticks so Exit/Enter cycles need no re-tap.
	if st.taps >= tapsToUnlock {
		st.taps = 0
		st.unlocked = true
		st.active = true
	}

	return &TapState{Taps: st.taps, Unlocked: st.unlocked, Active: st.active}, nil
}

// Enter switches the session into admin mode. The gate must be unlocked first.
func (g *Gate) Enter(sessionID string) (*TapState, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.state[sessionID]
	if !ok || !st.unlocked {
		return nil, ErrGateLocked
	}
	st.active = true
	return &TapState{Taps: st.taps, Unlocked: st.unlocked, Active: st.active}, nil
}

// EnterPrivileged switches the session straight into admin mode, bypassing
// the tap sequence. The tap gesture is the override for everyone else;
// callers whose role already carries the affordance need no further proof.
func (g *Gate) EnterPrivileged(sessionID string) (*TapState, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.state[sessionID]
	if !ok {
		st = &gateState{}
		g.state[sessionID] = st
	}
	st.unlocked = true
	st.active = true
	return &TapState{Taps: st.taps, Unlocked: st.unlocked, Active: st.active}, nil
}

// Exit leaves admin mode but keeps the unlock so the user can re-enter
// without re-tapping.
func (g *Gate) Exit(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if st, ok := g.state[sessionID]; ok {
		st.active = false
	}
}

// Active reports whether the session is currently in admin mode.
func (g *Gate) Active(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.state[sessionID]
	return ok && st.active
}

// Clear wipes all gate state for the session. Called on logout.
func (g *Gate) Clear(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.state, sessionID)
}
