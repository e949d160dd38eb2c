// Package cooldown tracks when a one-time code was last issued for an
// identifier, so resend requests can be throttled. The tracker is
// deliberately separate from the code store: superseding a code must not
// reset the clock, and losing tracker state only relaxes the throttle.
package cooldown

import "context"

type Tracker interface {
	// MarkSent records an issuance at the current time.
	MarkSent(ctx context.Context, identifier string) error
	// SecondsRemaining reports how many whole seconds of cooldown are left
	// for the identifier; 0 means a new code may be issued.
	SecondsRemaining(ctx context.Context, identifier string) (int, error)
}
