package bargain

import "errors"

// Domain errors returned by the service. Controllers map these to HTTP
// responses; nothing in this package knows about status codes.
var (
	// ErrNotFound means the activity id is unknown.
	ErrNotFound = errors.New("bargain: activity not found")

	// ErrExpired means the activity's deadline has passed. Distinct from
	// ErrNotActive so callers can show "too late" instead of a generic
	// closed message.
	ErrExpired = errors.New("bargain: activity expired")

	// ErrNotActive means the activity is in a terminal state other than
	// EXPIRED (dealt, fully cut, or cancelled).
	ErrNotActive = errors.New("bargain: activity is not active")

	// ErrAlreadyContributed means this participant already holds a
	// contribution on the activity and is not its creator.
	ErrAlreadyContributed = errors.New("bargain: participant already contributed")

	// ErrInvalidAmount means the cut policy produced a non-positive amount.
	ErrInvalidAmount = errors.New("bargain: invalid contribution amount")

	// ErrForbidden means a participant other than the creator attempted a
	// creator-only operation (Deal, Cancel).
	ErrForbidden = errors.New("bargain: only the creator may perform this")

	// ErrThresholdNotMet means Deal was called before progress reached the
	// activity's deal threshold.
	ErrThresholdNotMet = errors.New("bargain: deal threshold not reached")

	// ErrInvalidTerms means activity creation was asked for terms that
	// violate the model (floor above origin price, threshold outside
	// [0,100], non-positive duration).
	ErrInvalidTerms = errors.New("bargain: invalid activity terms")
)
