package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsCancelable(t *testing.T) {
	scheduledAt := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before the window", scheduledAt.Add(-72 * time.Hour), true},
		{"one nanosecond before the boundary", scheduledAt.Add(-CancellationNotice).Add(-time.Nanosecond), true},
		{"exactly at the boundary", scheduledAt.Add(-CancellationNotice), false},
		{"inside the window", scheduledAt.Add(-24 * time.Hour), false},
		{"after the meetup", scheduledAt.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCancelable(scheduledAt, tt.now))
		})
	}
}

func TestAssertOwner(t *testing.T) {
	assert.NoError(t, AssertOwner("user-1", "user-1"))
	assert.ErrorIs(t, AssertOwner("user-1", "user-2"), ErrForbidden)
}
