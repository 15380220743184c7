package gateway

import (
	"context"
	"errors"
	"net"

	"github.com/Black1ssl/menfess-bot/internal/domain"
)

// Outcome is the gateway's classification of one outbound call attempt.
// Callers never see the underlying error; they decide policy from the
// outcome alone (moderation actions are idempotent and safe to reissue,
// sends are not).
type Outcome int

const (
	// OutcomeOK means the platform acknowledged the call.
	OutcomeOK Outcome = iota
	// OutcomeRetryable means a transient transport failure (timeout,
	// connection error). The call may or may not have reached the
	// platform.
	OutcomeRetryable
	// OutcomePermanent means the platform rejected the call (bad
	// request, insufficient permission) or the failure is not known to
	// be transient. Reissuing the same call will not help.
	OutcomePermanent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRetryable:
		return "retryable"
	case OutcomePermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Failed reports whether the call did not get an acknowledgement.
func (o Outcome) Failed() bool { return o != OutcomeOK }

// Result is what callers get back from every gateway operation.
// MessageID is only meaningful when Outcome is OutcomeOK and the
// operation produces a message.
type Result struct {
	Outcome   Outcome
	MessageID domain.MessageID
}

// OK reports whether the platform acknowledged the call.
func (r Result) OK() bool { return r.Outcome == OutcomeOK }

// Classify maps an error from the platform adapter onto an outcome.
// Platform-reported errors are permanent; transport-level failures are
// retryable; anything unrecognized is treated as permanent.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}

	var platformErr *domain.PlatformError
	if errors.As(err, &platformErr) {
		return OutcomePermanent
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return OutcomeRetryable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return OutcomeRetryable
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return OutcomeRetryable
	}

	return OutcomePermanent
}
