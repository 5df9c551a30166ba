package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"charity/internal/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func queryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.Invalid(key, "must be true or false")
	}
	return &v, nil
}

func queryInt(r *http.Request, key string, fallback, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, domain.Invalid(key, "must be a non-negative integer")
	}
	if max > 0 && v > max {
		v = max
	}
	return v, nil
}

// queryYear returns the [start, end) range of ?year= in loc, or nils.
func queryYear(r *http.Request, loc *time.Location) (*time.Time, *time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	if raw == "" {
		return nil, nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2100 {
		return nil, nil, domain.Invalid("year", "out of range")
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(1, 0, 0)
	return &start, &end, nil
}

func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*raw))
	if err != nil {
		return nil, domain.Invalid(field, "must be YYYY-MM-DD")
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
