package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/domain"
)

// badRequestErrors are domain rule violations surfaced as 400. This includes
// the not-found cases: the public contract has always answered 400 for a
// missing meetup, so it stays that way.
var badRequestErrors = []error{
	domain.ErrValidation,
	domain.ErrPastDate,
	domain.ErrBannerNotFound,
	domain.ErrDuplicateMeetup,
	domain.ErrNotFound,
	domain.ErrMeetupNotFound,
	domain.ErrMeetupPast,
	domain.ErrSelfSubscription,
	domain.ErrDuplicateSubscription,
	domain.ErrTimeConflict,
	domain.ErrUserNotFound,
	domain.ErrDuplicateEmail,
}

// unauthorizedErrors are surfaced as 401.
var unauthorizedErrors = []error{
	domain.ErrForbidden,
	domain.ErrCancellationWindow,
}

func statusForError(err error) (int, string) {
	for _, target := range unauthorizedErrors {
		if errors.Is(err, target) {
			return http.StatusUnauthorized, helpers.ErrCodeUnauthorized
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, helpers.ErrCodeBadRequest
		}
	}
	return http.StatusInternalServerError, helpers.ErrCodeInternalError
}

// writeDomainError maps err onto the contract's status codes and writes the
// envelope. Infrastructure failures are logged; domain violations are not.
func writeDomainError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, err.Error())
}
