package domain

import "errors"

// Sentinel errors for meetup rule violations. Each failed operation returns
// exactly one of these (possibly wrapped with detail); the delivery layer
// maps them to response codes.
var (
	ErrValidation         = errors.New("validation fails")
	ErrPastDate           = errors.New("past dates are not permitted")
	ErrBannerNotFound     = errors.New("the banner informed does not exist")
	ErrDuplicateMeetup    = errors.New("meetup already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("you do not have permission to change this meetup")
	ErrCancellationWindow = errors.New("meetups can only be cancelled 2 days in advance")
)

// Sentinel errors for subscription rule violations.
var (
	ErrMeetupNotFound        = errors.New("meetup does not exist")
	ErrMeetupPast            = errors.New("meetup already passed")
	ErrSelfSubscription      = errors.New("cannot subscribe to your own meetup")
	ErrDuplicateSubscription = errors.New("already subscribed to this meetup")
	ErrTimeConflict          = errors.New("cannot subscribe to two meetups at the same hour")
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)
