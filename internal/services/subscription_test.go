package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"meetapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSubscriptionRepo struct {
	createErr  error
	lastWindow domain.TimeRange
	created    []*domain.Subscription
	upcoming   []*domain.UpcomingMeetup
	listErr    error
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription, window domain.TimeRange) error {
	f.lastWindow = window
	if f.createErr != nil {
		return f.createErr
	}
	sub.ID = "sub-1"
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeSubscriptionRepo) ListUpcomingByAttendee(ctx context.Context, attendeeID string, now time.Time) ([]*domain.UpcomingMeetup, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.upcoming, nil
}

type fakeUserRepo struct {
	users     map[string]*domain.User
	createErr error
	updateErr error
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.users == nil {
		f.users = map[string]*domain.User{}
	}
	u.ID = "user-new"
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.users[u.ID] = u
	return nil
}

type fakeNotifier struct {
	err      error
	topics   []string
	payloads []any
}

func (f *fakeNotifier) Enqueue(ctx context.Context, topic string, payload any) error {
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return f.err
}

func newSubscriptionServiceForTest(subs *fakeSubscriptionRepo, meetups *fakeMeetupRepo, users *fakeUserRepo, notifier domain.Notifier) *subscriptionService {
	svc := NewSubscriptionService(subs, meetups, users, notifier, testLogger, 2*time.Second).(*subscriptionService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func testUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{
		"organizer-1": {ID: "organizer-1", Name: "Ana", Email: "ana@example.com"},
		"attendee-1":  {ID: "attendee-1", Name: "Bruno", Email: "bruno@example.com"},
	}}
}

func futureMeetup() *domain.Meetup {
	return &domain.Meetup{
		ID:          "m1",
		OrganizerID: "organizer-1",
		Title:       "Go Porto Alegre",
		Location:    "Tecnopuc",
		ScheduledAt: fixedNow.Add(96 * time.Hour),
	}
}

func TestSubscriptionService_Subscribe_Success(t *testing.T) {
	subs := &fakeSubscriptionRepo{}
	meetups := &fakeMeetupRepo{meetups: map[string]*domain.Meetup{"m1": futureMeetup()}}
	notifier := &fakeNotifier{}
	svc := newSubscriptionServiceForTest(subs, meetups, testUsers(), notifier)

	sub, err := svc.Subscribe(context.Background(), "attendee-1", "m1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "attendee-1", sub.AttendeeID)
	assert.Equal(t, "m1", sub.MeetupID)

	// Conflict detection happens inside the meetup's clock hour.
	want := domain.HourWindow(futureMeetup().ScheduledAt)
	assert.True(t, subs.lastWindow.Start.Equal(want.Start))
	assert.True(t, subs.lastWindow.End.Equal(want.End))

	require.Len(t, notifier.topics, 1)
	assert.Equal(t, domain.TopicSubscriptionCreated, notifier.topics[0])
	notice, ok := notifier.payloads[0].(domain.SubscriptionNotice)
	require.True(t, ok)
	assert.Equal(t, "Go Porto Alegre", notice.MeetupTitle)
	assert.Equal(t, "ana@example.com", notice.OrganizerEmail)
	assert.Equal(t, "Bruno", notice.AttendeeName)
}

func TestSubscriptionService_Subscribe_RuleViolations(t *testing.T) {
	pastMeetup := futureMeetup()
	pastMeetup.ID = "m2"
	pastMeetup.ScheduledAt = fixedNow.Add(-time.Hour)

	tests := []struct {
		name       string
		attendeeID string
		meetupID   string
		createErr  error
		wantErr    error
	}{
		{"meetup missing", "attendee-1", "missing", nil, domain.ErrMeetupNotFound},
		{"meetup already passed", "attendee-1", "m2", nil, domain.ErrMeetupPast},
		{"own meetup", "organizer-1", "m1", nil, domain.ErrSelfSubscription},
		{"already subscribed", "attendee-1", "m1", domain.ErrDuplicateSubscription, domain.ErrDuplicateSubscription},
		{"same hour conflict", "attendee-1", "m1", domain.ErrTimeConflict, domain.ErrTimeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := &fakeSubscriptionRepo{createErr: tt.createErr}
			meetups := &fakeMeetupRepo{meetups: map[string]*domain.Meetup{"m1": futureMeetup(), "m2": pastMeetup}}
			notifier := &fakeNotifier{}
			svc := newSubscriptionServiceForTest(subs, meetups, testUsers(), notifier)

			_, err := svc.Subscribe(context.Background(), tt.attendeeID, tt.meetupID)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, subs.created)
			assert.Empty(t, notifier.topics, "no notice on a rejected subscription")
		})
	}
}

func TestSubscriptionService_Subscribe_NotifierFailureDoesNotFail(t *testing.T) {
	subs := &fakeSubscriptionRepo{}
	meetups := &fakeMeetupRepo{meetups: map[string]*domain.Meetup{"m1": futureMeetup()}}
	notifier := &fakeNotifier{err: context.DeadlineExceeded}
	svc := newSubscriptionServiceForTest(subs, meetups, testUsers(), notifier)

	sub, err := svc.Subscribe(context.Background(), "attendee-1", "m1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Len(t, subs.created, 1)
}

func TestSubscriptionService_Subscribe_NilNotifier(t *testing.T) {
	subs := &fakeSubscriptionRepo{}
	meetups := &fakeMeetupRepo{meetups: map[string]*domain.Meetup{"m1": futureMeetup()}}
	svc := newSubscriptionServiceForTest(subs, meetups, testUsers(), nil)

	_, err := svc.Subscribe(context.Background(), "attendee-1", "m1")
	require.NoError(t, err)
}

func TestSubscriptionService_ListUpcoming(t *testing.T) {
	t1 := fixedNow.Add(24 * time.Hour)
	t2 := fixedNow.Add(48 * time.Hour)
	t3 := fixedNow.Add(72 * time.Hour)
	subs := &fakeSubscriptionRepo{upcoming: []*domain.UpcomingMeetup{
		{Title: "first", ScheduledAt: t1},
		{Title: "second", ScheduledAt: t2},
		{Title: "third", ScheduledAt: t3},
	}}
	svc := newSubscriptionServiceForTest(subs, &fakeMeetupRepo{}, testUsers(), nil)

	got, err := svc.ListUpcoming(context.Background(), "attendee-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
}

func TestSubscriptionService_ListUpcoming_Empty(t *testing.T) {
	svc := newSubscriptionServiceForTest(&fakeSubscriptionRepo{}, &fakeMeetupRepo{}, testUsers(), nil)
	got, err := svc.ListUpcoming(context.Background(), "attendee-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
