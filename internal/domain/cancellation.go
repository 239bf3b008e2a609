package domain

import "time"

// CancellationNotice is how far in advance of a meetup's start a
// cancellation must happen.
const CancellationNotice = 48 * time.Hour

// IsCancelable reports whether a meetup scheduled at scheduledAt may still
// be cancelled at now. True iff now is strictly more than CancellationNotice
// before scheduledAt; at exactly the boundary the meetup is no longer
// cancelable.
func IsCancelable(scheduledAt, now time.Time) bool {
	return now.Before(scheduledAt.Add(-CancellationNotice))
}
