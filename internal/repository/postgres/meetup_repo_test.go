package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"meetapp/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scheduledAt = time.Date(2026, 4, 1, 14, 30, 0, 0, time.UTC)

func testMeetup() *domain.Meetup {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Meetup{
		OrganizerID: "user-1",
		Title:       "Go Porto Alegre",
		Description: "Monthly Go meetup with talks",
		Location:    "Tecnopuc",
		ScheduledAt: scheduledAt,
		BannerID:    "file-1",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestMeetupRepository_Create(t *testing.T) {
	window := domain.HourWindow(scheduledAt)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
		wantID  string
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("user-1", "Go Porto Alegre", "Monthly Go meetup with talks", "Tecnopuc", window.Start, window.End).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`INSERT INTO meetups`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("meetup-1"))
				mock.ExpectCommit()
			},
			wantID: "meetup-1",
		},
		{
			name: "duplicate in hour window",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS`).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrDuplicateMeetup,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewMeetupRepository(db)
			m := testMeetup()
			err = repo.Create(context.Background(), m, window)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, m.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMeetupRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	columns := []string{"id", "organizer_id", "title", "description", "location", "scheduled_at", "banner_id", "created_at", "updated_at"}
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM meetups WHERE id = \$1`).
		WithArgs("meetup-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("meetup-1", "user-1", "Go Porto Alegre", "Monthly Go meetup with talks", "Tecnopuc", scheduledAt, "file-1", created, created))

	repo := NewMeetupRepository(db)
	m, err := repo.GetByID(context.Background(), "meetup-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", m.OrganizerID)
	assert.True(t, m.ScheduledAt.Equal(scheduledAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetupRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM meetups`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewMeetupRepository(db)
	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMeetupRepository_ListByOrganizer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	columns := []string{"id", "title", "description", "location", "scheduled_at", "u.id", "u.name", "f.id", "f.path", "f.url"}
	mock.ExpectQuery(`SELECT m\.id, m\.title`).
		WithArgs("user-1", 10, 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("meetup-1", "Go Porto Alegre", "Monthly Go meetup with talks", "Tecnopuc", scheduledAt, "user-1", "Ana", "file-1", "banner.png", "http://localhost:8080/files/banner.png").
			AddRow("meetup-2", "Go Floripa", "Another Go meetup nearby", "UFSC", scheduledAt.Add(2*time.Hour), "user-1", "Ana", nil, nil, nil))

	repo := NewMeetupRepository(db)
	got, err := repo.ListByOrganizer(context.Background(), "user-1", nil, domain.PaginationParams{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Banner)
	assert.Equal(t, "banner.png", got[0].Banner.Path)
	assert.Nil(t, got[1].Banner)
	assert.Equal(t, "Ana", got[0].Organizer.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetupRepository_ListByOrganizer_WithWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	window := domain.DayWindow(scheduledAt)
	mock.ExpectQuery(`m\.scheduled_at BETWEEN \$2 AND \$3`).
		WithArgs("user-1", window.Start, window.End, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "location", "scheduled_at", "u.id", "u.name", "f.id", "f.path", "f.url"}))

	repo := NewMeetupRepository(db)
	got, err := repo.ListByOrganizer(context.Background(), "user-1", &window, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetupRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	title := "GopherCon Warmup"
	updatedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	columns := []string{"id", "organizer_id", "title", "description", "location", "scheduled_at", "banner_id", "created_at", "updated_at"}
	mock.ExpectQuery(`UPDATE meetups SET updated_at = \$1, title = \$2`).
		WithArgs(updatedAt, title, "meetup-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("meetup-1", "user-1", title, "Monthly Go meetup with talks", "Tecnopuc", scheduledAt, "file-1", updatedAt.Add(-time.Hour), updatedAt))

	repo := NewMeetupRepository(db)
	m, err := repo.Update(context.Background(), "meetup-1", domain.MeetupPatch{Title: &title}, updatedAt)
	require.NoError(t, err)
	assert.Equal(t, title, m.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetupRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM meetups WHERE id = \$1`).
		WithArgs("meetup-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM meetups WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMeetupRepository(db)
	require.NoError(t, repo.Delete(context.Background(), "meetup-1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "missing"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
