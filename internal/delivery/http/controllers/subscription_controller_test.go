package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetapp/internal/domain"
)

// fakeSubscriptionService implements domain.SubscriptionService for handler tests.
type fakeSubscriptionService struct {
	subscribeErr error
	listErr      error
	listResult   []*domain.UpcomingMeetup

	lastAttendeeID string
	lastMeetupID   string
}

func (f *fakeSubscriptionService) Subscribe(ctx context.Context, attendeeID, meetupID string) (*domain.Subscription, error) {
	f.lastAttendeeID = attendeeID
	f.lastMeetupID = meetupID
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	return &domain.Subscription{ID: "s-created", AttendeeID: attendeeID, MeetupID: meetupID}, nil
}

func (f *fakeSubscriptionService) ListUpcoming(ctx context.Context, attendeeID string) ([]*domain.UpcomingMeetup, error) {
	f.lastAttendeeID = attendeeID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func TestSubscriptionController_Subscribe(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusCreated},
		{name: "meetup not found", fakeErr: domain.ErrMeetupNotFound, wantStatus: http.StatusBadRequest},
		{name: "meetup already happened", fakeErr: domain.ErrMeetupPast, wantStatus: http.StatusBadRequest},
		{name: "own meetup", fakeErr: domain.ErrSelfSubscription, wantStatus: http.StatusBadRequest},
		{name: "already subscribed", fakeErr: domain.ErrDuplicateSubscription, wantStatus: http.StatusBadRequest},
		{name: "same hour clash", fakeErr: domain.ErrTimeConflict, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSubscriptionService{subscribeErr: tt.fakeErr}
			ctrl := NewSubscriptionController(testLogger(), fake)
			req := httptest.NewRequest(http.MethodPost, "/meetups/m-1/subscriptions", nil)
			req.SetPathValue("meetupID", "m-1")
			req = authed(req, "u-1")
			rr := httptest.NewRecorder()

			ctrl.Subscribe(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "u-1", fake.lastAttendeeID)
			assert.Equal(t, "m-1", fake.lastMeetupID)
			if tt.wantStatus == http.StatusCreated {
				var resp SubscriptionSuccessResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "s-created", resp.Data.ID)
			}
		})
	}
}

func TestSubscriptionController_Subscribe_Unauthenticated(t *testing.T) {
	ctrl := NewSubscriptionController(testLogger(), &fakeSubscriptionService{})
	req := httptest.NewRequest(http.MethodPost, "/meetups/m-1/subscriptions", nil)
	req.SetPathValue("meetupID", "m-1")
	rr := httptest.NewRecorder()

	ctrl.Subscribe(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSubscriptionController_ListUpcoming(t *testing.T) {
	upcoming := []*domain.UpcomingMeetup{
		{Title: "Go Meetup", Location: "Berlin", ScheduledAt: time.Date(2026, 4, 1, 14, 30, 0, 0, time.UTC)},
	}
	fake := &fakeSubscriptionService{listResult: upcoming}
	ctrl := NewSubscriptionController(testLogger(), fake)
	req := authed(httptest.NewRequest(http.MethodGet, "/subscriptions", nil), "u-1")
	rr := httptest.NewRecorder()

	ctrl.ListUpcoming(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp UpcomingListSuccessResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Go Meetup", resp.Data[0].Title)
	assert.Equal(t, "u-1", fake.lastAttendeeID)
}
