package revenue

import "errors"

// Validation sentinels surfaced to callers before any store mutation.
var (
	ErrOperationInFlight   = errors.New("revenue operation already in progress for this seller")
	ErrNoRevenue           = errors.New("no available revenue")
	ErrDuplicateConversion = errors.New("conversion already processed, refresh and try again")
	ErrInvalidContact      = errors.New("invalid payout contact details")
)
