package githubapi

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicy(slept *[]time.Duration, now time.Time) *retryPolicy {
	return &retryPolicy{
		maxAttempts: 5,
		baseDelay:   1 * time.Second,
		quotaPad:    10 * time.Second,
		now:         func() time.Time { return now },
		sleep:       func(d time.Duration) { *slept = append(*slept, d) },
	}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	var slept []time.Duration
	p := newTestPolicy(&slept, time.Now())

	attempts := 0
	err := p.run(func() attemptResult {
		attempts++
		if attempts <= 2 {
			return attemptResult{kind: attemptTransient, err: errors.New("connection reset")}
		}
		return attemptResult{kind: attemptOK}
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, slept, "exponential backoff")
}

func TestRetry_TransientExhaustsAttemptBudget(t *testing.T) {
	var slept []time.Duration
	p := newTestPolicy(&slept, time.Now())

	attempts := 0
	wantErr := errors.New("timeout")
	err := p.run(func() attemptResult {
		attempts++
		return attemptResult{kind: attemptTransient, err: wantErr}
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 5, attempts)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}, slept)
}

func TestRetry_FatalStopsImmediately(t *testing.T) {
	var slept []time.Duration
	p := newTestPolicy(&slept, time.Now())

	attempts := 0
	err := p.run(func() attemptResult {
		attempts++
		return attemptResult{kind: attemptFatal, err: ErrAuth}
	})

	require.ErrorIs(t, err, ErrAuth)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, slept, "fatal errors are never retried")
}

func TestRetry_QuotaWaitsUntilResetPlusPad(t *testing.T) {
	var slept []time.Duration
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := newTestPolicy(&slept, now)

	attempts := 0
	err := p.run(func() attemptResult {
		attempts++
		if attempts == 1 {
			return attemptResult{
				kind:    attemptQuota,
				err:     errors.New("zero remaining"),
				resetAt: now.Add(30 * time.Second),
			}
		}
		return attemptResult{kind: attemptOK}
	})

	require.NoError(t, err)
	require.Len(t, slept, 1)
	assert.Equal(t, 40*time.Second, slept[0], "reset delta plus pad")
}

func TestRetry_QuotaWaitWithPastResetUsesPadOnly(t *testing.T) {
	var slept []time.Duration
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := newTestPolicy(&slept, now)

	attempts := 0
	err := p.run(func() attemptResult {
		attempts++
		if attempts == 1 {
			return attemptResult{
				kind:    attemptQuota,
				err:     errors.New("zero remaining"),
				resetAt: now.Add(-5 * time.Minute),
			}
		}
		return attemptResult{kind: attemptOK}
	})

	require.NoError(t, err)
	require.Len(t, slept, 1)
	assert.Equal(t, 10*time.Second, slept[0])
}

func TestRetry_QuotaExhaustionSurfacesDistinctError(t *testing.T) {
	var slept []time.Duration
	p := newTestPolicy(&slept, time.Now())

	attempts := 0
	err := p.run(func() attemptResult {
		attempts++
		return attemptResult{kind: attemptQuota, err: errors.New("still exhausted"), resetAt: time.Now()}
	})

	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 5, attempts)
	assert.Len(t, slept, 4)
}
