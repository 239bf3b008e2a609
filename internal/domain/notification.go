package domain

import (
	"context"
	"time"
)

// TopicSubscriptionCreated is the queue topic for new-subscription notices.
const TopicSubscriptionCreated = "subscription.created"

// Notifier is a one-way send to a durable work queue. Enqueue is
// fire-and-forget: callers never wait for processing and never roll back on
// failure.
type Notifier interface {
	Enqueue(ctx context.Context, topic string, payload any) error
}

// Mailer sends an email (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template into subject, html,
// and text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, html, text string, err error)
}

// SubscriptionNotice is the payload published when an attendee subscribes to
// a meetup. A separate worker turns it into an email to the organizer.
type SubscriptionNotice struct {
	MeetupTitle    string    `json:"meetup_title"`
	MeetupLocation string    `json:"meetup_location"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	OrganizerName  string    `json:"organizer_name"`
	OrganizerEmail string    `json:"organizer_email"`
	AttendeeName   string    `json:"attendee_name"`
	AttendeeEmail  string    `json:"attendee_email"`
}
