package domain

import (
	"context"
	"time"
)

// Field length rules for meetup drafts and patches.
const (
	MinTitleLen       = 5
	MinDescriptionLen = 10
)

// Meetup represents an organizer-owned scheduled event.
// swagger:model Meetup
type Meetup struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"date"`
	BannerID    string    `json:"banner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMeetup returns a new Meetup owned by organizerID. ID is set by the
// repository on create.
func NewMeetup(organizerID string, draft MeetupDraft, createdAt time.Time) *Meetup {
	return &Meetup{
		OrganizerID: organizerID,
		Title:       draft.Title,
		Description: draft.Description,
		Location:    draft.Location,
		ScheduledAt: draft.ScheduledAt,
		BannerID:    draft.BannerID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// Past reports whether the meetup's start instant is before now. Derived at
// read time, never stored.
func (m *Meetup) Past(now time.Time) bool {
	return m.ScheduledAt.Before(now)
}

// MeetupDraft carries the caller-supplied fields for a new meetup.
type MeetupDraft struct {
	Title       string
	Description string
	Location    string
	ScheduledAt time.Time
	BannerID    string
}

// MeetupPatch is a partial update; nil fields are left unchanged.
type MeetupPatch struct {
	Title       *string
	Description *string
	Location    *string
	ScheduledAt *time.Time
	BannerID    *string
}

// OrganizerRef is the organizer projection embedded in meetup summaries.
type OrganizerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BannerRef is the banner file projection embedded in meetup summaries.
type BannerRef struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// MeetupSummary is the listing row for a meetup: the entity joined with its
// organizer and banner, plus the derived past/cancelable flags.
// swagger:model MeetupSummary
type MeetupSummary struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	ScheduledAt time.Time    `json:"date"`
	Past        bool         `json:"past"`
	Cancelable  bool         `json:"cancelable"`
	Organizer   OrganizerRef `json:"organizer"`
	Banner      *BannerRef   `json:"banner"`
}

// MeetupRepository defines storage operations for meetups.
type MeetupRepository interface {
	// Create persists m if the organizer holds no meetup with the same
	// title, description, and location scheduled inside window. The
	// check-then-insert sequence is atomic with respect to concurrent
	// callers; on collision Create returns ErrDuplicateMeetup.
	Create(ctx context.Context, m *Meetup, window TimeRange) error
	GetByID(ctx context.Context, id string) (*Meetup, error)
	// ListByOrganizer returns the organizer's meetups joined with organizer
	// and banner rows, ordered ascending by scheduled_at. A non-nil window
	// restricts results to meetups scheduled inside it.
	ListByOrganizer(ctx context.Context, organizerID string, window *TimeRange, page PaginationParams) ([]*MeetupSummary, error)
	Update(ctx context.Context, id string, patch MeetupPatch, updatedAt time.Time) (*Meetup, error)
	Delete(ctx context.Context, id string) error
}

// MeetupService enforces the meetup lifecycle rules.
type MeetupService interface {
	Create(ctx context.Context, organizerID string, draft MeetupDraft) (*Meetup, error)
	List(ctx context.Context, organizerID string, date *time.Time, page int) ([]*MeetupSummary, error)
	Update(ctx context.Context, meetupID, requesterID string, patch MeetupPatch) (*Meetup, error)
	Delete(ctx context.Context, meetupID, requesterID string) error
}
