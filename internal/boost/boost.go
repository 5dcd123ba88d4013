// Package boost implements the top up entitlement state machine: one free
// 24-hour boost credit per user per rolling 24-hour window, evaluated lazily
// on each read. There is no background scheduler; callers pass the current
// time and persist whatever the evaluation changed.
package boost

import (
	"fmt"
	"time"

	"github.com/viniciustorricelli/pensell/internal/domain"
)

// Window is both the entitlement cooldown and the boost duration.
const Window = 24 * time.Hour

// Package24h is the only boost package on offer; paid packages are a stub.
const Package24h = "24h"

// State of a user's entitlement after lazy evaluation.
type State string

const (
	// StateReady means a credit is available and activation is permitted.
	StateReady State = "ready"
	// StateCooling means the daily credit is spent and activation is blocked.
	StateCooling State = "cooling"
)

// Status is the result of evaluating a user's entitlement at a point in time.
type Status struct {
	State           State
	AvailableTopups int
	LastTopupReset  time.Time
	// Remaining is how long until the next credit; zero in StateReady.
	Remaining time.Duration
	// Mutated is true when evaluation changed the counters (first-use
	// initialization or the 24h auto-reset) and the caller must persist them.
	Mutated bool
}

// Evaluate runs the lazy state machine over the stored counters.
//
// A nil availableTopups means the user never touched the boost flow: they are
// granted their first credit immediately. A spent credit flips back to Ready
// once the window since lastReset has fully elapsed.
func Evaluate(availableTopups *int, lastReset *time.Time, now time.Time) Status {
	if availableTopups == nil || lastReset == nil {
		return Status{
			State:           StateReady,
			AvailableTopups: 1,
			LastTopupReset:  now,
			Mutated:         true,
		}
	}

	if *availableTopups > 0 {
		return Status{
			State:           StateReady,
			AvailableTopups: 1,
			LastTopupReset:  *lastReset,
		}
	}

	elapsed := now.Sub(*lastReset)
	if elapsed >= Window {
		return Status{
			State:           StateReady,
			AvailableTopups: 1,
			LastTopupReset:  now,
			Mutated:         true,
		}
	}

	return Status{
		State:           StateCooling,
		AvailableTopups: 0,
		LastTopupReset:  *lastReset,
		Remaining:       Window - elapsed,
	}
}

// CheckTarget rejects activation when the ad already carries an unexpired boost.
func CheckTarget(ad *domain.Ad, now time.Time) error {
	if ad.BoostActive(now) {
		return domain.ErrAlreadyBoosted
	}
	return nil
}

// FormatRemaining renders a countdown the way the client shows it,
// e.g. "23h 12m 5s". A non-positive duration reads "Disponível agora".
func FormatRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return "Disponível agora"
	}
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	seconds := int(remaining.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
