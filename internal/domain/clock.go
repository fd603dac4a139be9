package domain

import "github.com/jonboulle/clockwork"

// clock is the time source for processed_at stamps on combined records.
// Tests and the fixture generator freeze it via SetClock for deterministic
// output.
var clock = clockwork.NewRealClock()

// SetClock swaps the record-stamping time source. Pass nil to reset to real
// time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
