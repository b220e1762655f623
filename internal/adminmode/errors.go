package adminmode

import "errors"

// ErrGateLocked is returned when a session tries to enter admin mode before
// completing the tap sequence.
var ErrGateLocked = errors.New("admin mode gate is locked")
