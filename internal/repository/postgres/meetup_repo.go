package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetapp/internal/domain"
)

const meetupColumns = "id, organizer_id, title, description, location, scheduled_at, banner_id, created_at, updated_at"

type meetupRepository struct {
	DB *sql.DB
}

func NewMeetupRepository(db *sql.DB) domain.MeetupRepository {
	return &meetupRepository{DB: db}
}

// Create inserts m unless the organizer already has a meetup with the same
// title, description, and location scheduled inside window. The check and
// insert run in one serializable transaction so concurrent creates cannot
// both slip past the check.
func (r *meetupRepository) Create(ctx context.Context, m *domain.Meetup, window domain.TimeRange) error {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM meetups
			WHERE organizer_id = $1 AND title = $2 AND description = $3 AND location = $4
			  AND scheduled_at BETWEEN $5 AND $6
		)
	`, m.OrganizerID, m.Title, m.Description, m.Location, window.Start, window.End).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateMeetup
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO meetups (organizer_id, title, description, location, scheduled_at, banner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, m.OrganizerID, m.Title, m.Description, m.Location, m.ScheduledAt, m.BannerID, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *meetupRepository) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	query := fmt.Sprintf(`SELECT %s FROM meetups WHERE id = $1`, meetupColumns)
	m := &domain.Meetup{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.OrganizerID, &m.Title, &m.Description, &m.Location,
		&m.ScheduledAt, &m.BannerID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *meetupRepository) ListByOrganizer(ctx context.Context, organizerID string, window *domain.TimeRange, page domain.PaginationParams) ([]*domain.MeetupSummary, error) {
	where := []string{"m.organizer_id = $1"}
	args := []interface{}{organizerID}
	n := 2
	if window != nil {
		where = append(where, fmt.Sprintf("m.scheduled_at BETWEEN $%d AND $%d", n, n+1))
		args = append(args, window.Start, window.End)
		n += 2
	}
	query := fmt.Sprintf(`
		SELECT m.id, m.title, m.description, m.location, m.scheduled_at,
		       u.id, u.name, f.id, f.path, f.url
		FROM meetups m
		JOIN users u ON u.id = m.organizer_id
		LEFT JOIN files f ON f.id = m.banner_id
		WHERE %s
		ORDER BY m.scheduled_at ASC
		LIMIT $%d OFFSET $%d
	`, strings.Join(where, " AND "), n, n+1)
	args = append(args, page.PageSize, page.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*domain.MeetupSummary, 0)
	for rows.Next() {
		s := &domain.MeetupSummary{}
		var bannerID, bannerPath, bannerURL sql.NullString
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.Location, &s.ScheduledAt,
			&s.Organizer.ID, &s.Organizer.Name, &bannerID, &bannerPath, &bannerURL,
		); err != nil {
			return nil, err
		}
		if bannerID.Valid {
			s.Banner = &domain.BannerRef{ID: bannerID.String, Path: bannerPath.String, URL: bannerURL.String}
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *meetupRepository) Update(ctx context.Context, id string, patch domain.MeetupPatch, updatedAt time.Time) (*domain.Meetup, error) {
	setClauses := []string{"updated_at = $1"}
	args := []interface{}{updatedAt}
	n := 2
	if patch.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *patch.Title)
		n++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *patch.Description)
		n++
	}
	if patch.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *patch.Location)
		n++
	}
	if patch.ScheduledAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("scheduled_at = $%d", n))
		args = append(args, *patch.ScheduledAt)
		n++
	}
	if patch.BannerID != nil {
		setClauses = append(setClauses, fmt.Sprintf("banner_id = $%d", n))
		args = append(args, *patch.BannerID)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE meetups SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, meetupColumns)

	m := &domain.Meetup{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&m.ID, &m.OrganizerID, &m.Title, &m.Description, &m.Location,
		&m.ScheduledAt, &m.BannerID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *meetupRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM meetups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
