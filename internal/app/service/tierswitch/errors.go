package tierswitch

import "errors"

var (
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrTierNotFound          = errors.New("subscription tier not found")
	ErrPendingChangeNotFound = errors.New("pending change not found")

	// ErrNotAnUpgrade: the requested tier is not pricier than the current one;
	// the caller should use the schedule-downgrade endpoint.
	ErrNotAnUpgrade = errors.New("tier switch is not an upgrade: use the schedule-downgrade endpoint")
	// ErrNotADowngrade: the requested tier is pricier than the current one;
	// the caller should use the upgrade endpoint.
	ErrNotADowngrade = errors.New("tier switch is an upgrade: use the upgrade endpoint")
)
