package githubapi

import (
	"fmt"
	"time"
)

// Retry handling for one API call, written as a small state machine so
// the bounded-attempt and escalation contracts can be tested without a
// network. Transient failures back off exponentially, quota failures
// wait until the reported reset instant plus a pad, auth and other
// fatal failures stop immediately.

type retryState int

const (
	stateAttempting retryState = iota
	stateBackoffWait
	stateQuotaWait
	stateFailed
	stateSucceeded
)

type attemptKind int

const (
	attemptOK attemptKind = iota
	attemptTransient
	attemptQuota
	attemptFatal
)

type attemptResult struct {
	kind    attemptKind
	err     error
	resetAt time.Time
}

type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	quotaPad    time.Duration
	now         func() time.Time
	sleep       func(time.Duration)
}

// run drives attempt until it succeeds, fails fatally, or the attempt
// budget is spent. The error of the last attempt is returned; a spent
// budget on quota failures surfaces as ErrQuotaExceeded.
func (p *retryPolicy) run(attempt func() attemptResult) error {
	state := stateAttempting
	delay := p.baseDelay
	attempts := 0
	var last attemptResult

	for {
		switch state {
		case stateAttempting:
			attempts++
			last = attempt()
			switch last.kind {
			case attemptOK:
				state = stateSucceeded
			case attemptFatal:
				state = stateFailed
			case attemptTransient:
				if attempts >= p.maxAttempts {
					state = stateFailed
				} else {
					state = stateBackoffWait
				}
			case attemptQuota:
				last.err = fmt.Errorf("%w: %v", ErrQuotaExceeded, last.err)
				if attempts >= p.maxAttempts {
					state = stateFailed
				} else {
					state = stateQuotaWait
				}
			}

		case stateBackoffWait:
			p.sleep(delay)
			delay *= 2
			state = stateAttempting

		case stateQuotaWait:
			wait := last.resetAt.Sub(p.now())
			if wait < 0 {
				wait = 0
			}
			p.sleep(wait + p.quotaPad)
			state = stateAttempting

		case stateFailed:
			return last.err

		case stateSucceeded:
			return nil
		}
	}
}
