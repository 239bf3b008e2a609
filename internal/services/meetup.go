package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetapp/internal/domain"
)

type meetupService struct {
	meetupRepo     domain.MeetupRepository
	fileRepo       domain.FileRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewMeetupService creates a MeetupService with the given repositories.
func NewMeetupService(meetupRepo domain.MeetupRepository, fileRepo domain.FileRepository, timeout time.Duration) domain.MeetupService {
	return &meetupService{
		meetupRepo:     meetupRepo,
		fileRepo:       fileRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *meetupService) Create(ctx context.Context, organizerID string, draft domain.MeetupDraft) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var errs []string
	if len(draft.Title) < domain.MinTitleLen {
		errs = append(errs, fmt.Sprintf("title must be at least %d characters", domain.MinTitleLen))
	}
	if len(draft.Description) < domain.MinDescriptionLen {
		errs = append(errs, fmt.Sprintf("description must be at least %d characters", domain.MinDescriptionLen))
	}
	if strings.TrimSpace(draft.Location) == "" {
		errs = append(errs, "location is required")
	}
	if draft.ScheduledAt.IsZero() {
		errs = append(errs, "date is required")
	}
	if draft.BannerID == "" {
		errs = append(errs, "banner_id is required")
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}

	now := s.now()
	if !draft.ScheduledAt.After(now) {
		return nil, domain.ErrPastDate
	}

	if _, err := s.fileRepo.GetByID(ctx, draft.BannerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBannerNotFound
		}
		return nil, fmt.Errorf("get banner: %w", err)
	}

	meetup := domain.NewMeetup(organizerID, draft, now)
	window := domain.HourWindow(draft.ScheduledAt)
	if err := s.meetupRepo.Create(ctx, meetup, window); err != nil {
		if errors.Is(err, domain.ErrDuplicateMeetup) {
			return nil, domain.ErrDuplicateMeetup
		}
		return nil, fmt.Errorf("create meetup: %w", err)
	}
	return meetup, nil
}

func (s *meetupService) List(ctx context.Context, organizerID string, date *time.Time, page int) ([]*domain.MeetupSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var window *domain.TimeRange
	if date != nil {
		w := domain.DayWindow(*date)
		window = &w
	}

	summaries, err := s.meetupRepo.ListByOrganizer(ctx, organizerID, window, domain.MeetupPage(page))
	if err != nil {
		return nil, fmt.Errorf("list meetups: %w", err)
	}

	now := s.now()
	for _, m := range summaries {
		m.Past = m.ScheduledAt.Before(now)
		m.Cancelable = domain.IsCancelable(m.ScheduledAt, now)
	}
	if summaries == nil {
		summaries = []*domain.MeetupSummary{}
	}
	return summaries, nil
}

func (s *meetupService) Update(ctx context.Context, meetupID, requesterID string, patch domain.MeetupPatch) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	if err := domain.AssertOwner(meetup.OrganizerID, requesterID); err != nil {
		return nil, err
	}

	var errs []string
	if patch.Title != nil && len(*patch.Title) < domain.MinTitleLen {
		errs = append(errs, fmt.Sprintf("title must be at least %d characters", domain.MinTitleLen))
	}
	if patch.Description != nil && len(*patch.Description) < domain.MinDescriptionLen {
		errs = append(errs, fmt.Sprintf("description must be at least %d characters", domain.MinDescriptionLen))
	}
	if patch.Location != nil && strings.TrimSpace(*patch.Location) == "" {
		errs = append(errs, "location must not be empty")
	}
	if patch.ScheduledAt != nil && patch.ScheduledAt.IsZero() {
		errs = append(errs, "date must be a valid instant")
	}
	if patch.BannerID != nil && *patch.BannerID == "" {
		errs = append(errs, "banner_id must not be empty")
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}

	if patch.BannerID != nil {
		if _, err := s.fileRepo.GetByID(ctx, *patch.BannerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrBannerNotFound
			}
			return nil, fmt.Errorf("get banner: %w", err)
		}
	}

	updated, err := s.meetupRepo.Update(ctx, meetupID, patch, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update meetup: %w", err)
	}
	return updated, nil
}

func (s *meetupService) Delete(ctx context.Context, meetupID, requesterID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get meetup: %w", err)
	}
	if err := domain.AssertOwner(meetup.OrganizerID, requesterID); err != nil {
		return err
	}
	if !domain.IsCancelable(meetup.ScheduledAt, s.now()) {
		return domain.ErrCancellationWindow
	}

	if err := s.meetupRepo.Delete(ctx, meetupID); err != nil {
		return fmt.Errorf("delete meetup: %w", err)
	}
	return nil
}
