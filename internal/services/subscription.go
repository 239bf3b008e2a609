package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetapp/internal/domain"
)

type subscriptionService struct {
	subscriptionRepo domain.SubscriptionRepository
	meetupRepo       domain.MeetupRepository
	userRepo         domain.UserRepository
	notifier         domain.Notifier
	logger           *slog.Logger
	contextTimeout   time.Duration
	now              func() time.Time
}

// NewSubscriptionService creates a SubscriptionService. The notifier may be
// nil, in which case no notification is published.
func NewSubscriptionService(
	subscriptionRepo domain.SubscriptionRepository,
	meetupRepo domain.MeetupRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		meetupRepo:       meetupRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		logger:           logger,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, attendeeID, meetupID string) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMeetupNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}

	now := s.now()
	if meetup.Past(now) {
		return nil, domain.ErrMeetupPast
	}
	if meetup.OrganizerID == attendeeID {
		return nil, domain.ErrSelfSubscription
	}

	sub := domain.NewSubscription(attendeeID, meetupID, now)
	window := domain.HourWindow(meetup.ScheduledAt)
	if err := s.subscriptionRepo.Create(ctx, sub, window); err != nil {
		if errors.Is(err, domain.ErrDuplicateSubscription) || errors.Is(err, domain.ErrTimeConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	// The subscription is committed at this point; notification is
	// fire-and-forget and must not undo it.
	s.notifySubscription(ctx, meetup, attendeeID)

	return sub, nil
}

func (s *subscriptionService) notifySubscription(ctx context.Context, meetup *domain.Meetup, attendeeID string) {
	if s.notifier == nil {
		return
	}
	organizer, err := s.userRepo.GetByID(ctx, meetup.OrganizerID)
	if err != nil {
		s.logger.WarnContext(ctx, "subscription notice skipped", "meetup_id", meetup.ID, "err", err)
		return
	}
	attendee, err := s.userRepo.GetByID(ctx, attendeeID)
	if err != nil {
		s.logger.WarnContext(ctx, "subscription notice skipped", "meetup_id", meetup.ID, "err", err)
		return
	}
	notice := domain.SubscriptionNotice{
		MeetupTitle:    meetup.Title,
		MeetupLocation: meetup.Location,
		ScheduledAt:    meetup.ScheduledAt,
		OrganizerName:  organizer.Name,
		OrganizerEmail: organizer.Email,
		AttendeeName:   attendee.Name,
		AttendeeEmail:  attendee.Email,
	}
	if err := s.notifier.Enqueue(ctx, domain.TopicSubscriptionCreated, notice); err != nil {
		s.logger.WarnContext(ctx, "subscription notice enqueue failed", "meetup_id", meetup.ID, "err", err)
	}
}

func (s *subscriptionService) ListUpcoming(ctx context.Context, attendeeID string) ([]*domain.UpcomingMeetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	upcoming, err := s.subscriptionRepo.ListUpcomingByAttendee(ctx, attendeeID, s.now())
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if upcoming == nil {
		upcoming = []*domain.UpcomingMeetup{}
	}
	return upcoming, nil
}
