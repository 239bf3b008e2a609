package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"meetapp/internal/domain"
)

type subscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{DB: db}
}

// Create inserts sub unless the attendee already holds a subscription for
// the same meetup or for any meetup scheduled inside window. The checks and
// insert run in one serializable transaction; the UNIQUE (user_id,
// meetup_id) constraint backs the duplicate check so two racing inserts
// cannot both commit.
func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription, window domain.TimeRange) error {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions WHERE user_id = $1 AND meetup_id = $2
		)
	`, sub.AttendeeID, sub.MeetupID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateSubscription
	}

	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions s
			JOIN meetups m ON m.id = s.meetup_id
			WHERE s.user_id = $1 AND m.scheduled_at BETWEEN $2 AND $3
		)
	`, sub.AttendeeID, window.Start, window.End).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrTimeConflict
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO subscriptions (user_id, meetup_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, sub.AttendeeID, sub.MeetupID, sub.CreatedAt).Scan(&sub.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateSubscription
		}
		return err
	}
	return tx.Commit()
}

func (r *subscriptionRepository) ListUpcomingByAttendee(ctx context.Context, attendeeID string, now time.Time) ([]*domain.UpcomingMeetup, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.title, m.description, m.location, m.scheduled_at
		FROM subscriptions s
		JOIN meetups m ON m.id = s.meetup_id
		WHERE s.user_id = $1 AND m.scheduled_at > $2
		ORDER BY m.scheduled_at ASC
	`, attendeeID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	upcoming := make([]*domain.UpcomingMeetup, 0)
	for rows.Next() {
		u := &domain.UpcomingMeetup{}
		if err := rows.Scan(&u.Title, &u.Description, &u.Location, &u.ScheduledAt); err != nil {
			return nil, err
		}
		upcoming = append(upcoming, u)
	}
	return upcoming, rows.Err()
}
