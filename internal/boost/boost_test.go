package boost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viniciustorricelli/pensell/internal/domain"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int              { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluate_UninitializedGetsFirstCredit(t *testing.T) {
	status := Evaluate(nil, nil, now)

	assert.Equal(t, StateReady, status.State)
	assert.Equal(t, 1, status.AvailableTopups)
	assert.Equal(t, now, status.LastTopupReset)
	assert.True(t, status.Mutated)
}

func TestEvaluate_ReadyStaysReady(t *testing.T) {
	reset := now.Add(-2 * time.Hour)
	status := Evaluate(intPtr(1), timePtr(reset), now)

	assert.Equal(t, StateReady, status.State)
	assert.Equal(t, reset, status.LastTopupReset)
	assert.False(t, status.Mutated)
}

func TestEvaluate_CoolingExposesRemaining(t *testing.T) {
	reset := now.Add(-1 * time.Hour)
	status := Evaluate(intPtr(0), timePtr(reset), now)

	assert.Equal(t, StateCooling, status.State)
	assert.Equal(t, 0, status.AvailableTopups)
	assert.Equal(t, 23*time.Hour, status.Remaining)
	assert.False(t, status.Mutated)
}

func TestEvaluate_AutoResetAfterWindow(t *testing.T) {
	reset := now.Add(-25 * time.Hour)
	status := Evaluate(intPtr(0), timePtr(reset), now)

	assert.Equal(t, StateReady, status.State)
	assert.Equal(t, 1, status.AvailableTopups)
	assert.Equal(t, now, status.LastTopupReset)
	assert.True(t, status.Mutated)
}

func TestEvaluate_ExactWindowBoundaryResets(t *testing.T) {
	reset := now.Add(-Window)
	status := Evaluate(intPtr(0), timePtr(reset), now)

	assert.Equal(t, StateReady, status.State)
	assert.True(t, status.Mutated)
}

func TestCheckTarget_RejectsUnexpiredBoost(t *testing.T) {
	expires := now.Add(1 * time.Hour)
	ad := &domain.Ad{IsBoosted: true, BoostExpiresAt: &expires}

	assert.ErrorIs(t, CheckTarget(ad, now), domain.ErrAlreadyBoosted)
}

func TestCheckTarget_AllowsExpiredBoost(t *testing.T) {
	expires := now.Add(-1 * time.Minute)
	ad := &domain.Ad{IsBoosted: true, BoostExpiresAt: &expires}

	assert.NoError(t, CheckTarget(ad, now))
}

func TestCheckTarget_AllowsPlainAd(t *testing.T) {
	assert.NoError(t, CheckTarget(&domain.Ad{}, now))
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{"almost full window", 23*time.Hour + 12*time.Minute + 5*time.Second, "23h 12m 5s"},
		{"under a minute", 42 * time.Second, "0h 0m 42s"},
		{"zero", 0, "Disponível agora"},
		{"negative", -time.Second, "Disponível agora"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatRemaining(tc.remaining))
		})
	}
}
