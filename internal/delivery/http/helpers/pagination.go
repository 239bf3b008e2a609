package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DefaultPage is the page used when the query parameter is missing or invalid.
const DefaultPage = 1

// ParsePage reads the 1-indexed page from the request query string. Invalid
// or missing values fall back to DefaultPage.
func ParsePage(r *http.Request) int {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	return page
}

// dateLayouts are accepted formats for the date filter, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate reads the optional date filter from the request query string.
// Returns nil when absent and an error when present but unparseable.
func ParseDate(r *http.Request) (*time.Time, error) {
	s := r.URL.Query().Get("date")
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}
