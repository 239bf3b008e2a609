package domain

// MeetupPageSize is the fixed page size for meetup listings.
const MeetupPageSize = 10

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// MeetupPage returns pagination for a 1-indexed page of meetup listings.
// Pages below 1 are clamped to the first page.
func MeetupPage(page int) PaginationParams {
	if page < 1 {
		page = 1
	}
	return PaginationParams{Page: page, PageSize: MeetupPageSize}
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
