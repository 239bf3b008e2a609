package domain

import (
	"context"
	"time"
)

// Subscription records an attendee's registration of interest in a meetup.
// Append-only: the core defines no update or delete for it.
// swagger:model Subscription
type Subscription struct {
	ID         string    `json:"id"`
	AttendeeID string    `json:"attendee_id"`
	MeetupID   string    `json:"meetup_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewSubscription returns a new Subscription. ID is set by the repository on
// create.
func NewSubscription(attendeeID, meetupID string, createdAt time.Time) *Subscription {
	return &Subscription{
		AttendeeID: attendeeID,
		MeetupID:   meetupID,
		CreatedAt:  createdAt,
	}
}

// UpcomingMeetup is the projection returned when listing an attendee's
// upcoming subscriptions.
// swagger:model UpcomingMeetup
type UpcomingMeetup struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"date"`
}

// SubscriptionRepository defines storage operations for subscriptions.
type SubscriptionRepository interface {
	// Create persists sub if the attendee has no existing subscription for
	// the same meetup and none whose meetup is scheduled inside window. Both
	// checks are atomic with respect to concurrent callers: a duplicate pair
	// returns ErrDuplicateSubscription (backed by a uniqueness constraint so
	// two racing inserts cannot both succeed) and a window collision returns
	// ErrTimeConflict.
	Create(ctx context.Context, sub *Subscription, window TimeRange) error
	// ListUpcomingByAttendee returns the attendee's subscribed meetups with
	// scheduled_at strictly after now, ordered ascending by scheduled_at.
	ListUpcomingByAttendee(ctx context.Context, attendeeID string, now time.Time) ([]*UpcomingMeetup, error)
}

// SubscriptionService enforces the attendee-side subscription rules.
type SubscriptionService interface {
	Subscribe(ctx context.Context, attendeeID, meetupID string) (*Subscription, error)
	ListUpcoming(ctx context.Context, attendeeID string) ([]*UpcomingMeetup, error)
}
