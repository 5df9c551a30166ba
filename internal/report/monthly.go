package report

import (
	"sort"
	"time"

	"charity/internal/domain"
)

const monthLayout = "2006-01"

// MonthBucket is one point of the income/expense time series.
type MonthBucket struct {
	Month   string `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Balance int64  `json:"balance"`
}

// MonthKey formats t as YYYY-MM in loc (UTC when nil).
func MonthKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(monthLayout)
}

// Monthly groups confirmed donations and all expenses by the calendar month
// of CreatedAt. Months without records are omitted; use FillMonths for a
// contiguous axis.
func Monthly(donations []domain.Donation, expenses []domain.Expense, loc *time.Location) []MonthBucket {
	buckets := make(map[string]*MonthBucket)
	get := func(t time.Time) *MonthBucket {
		key := MonthKey(t, loc)
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Month: key}
			buckets[key] = b
		}
		return b
	}
	for _, d := range donations {
		if !d.IsConfirmed {
			continue
		}
		get(d.CreatedAt).Income += amount(d.Amount)
	}
	for _, e := range expenses {
		get(e.CreatedAt).Expense += amount(e.Amount)
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		b.Balance = b.Income - b.Expense
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// FillMonths inserts zero buckets for the months missing between the first
// and last entry of a sorted series.
func FillMonths(series []MonthBucket) []MonthBucket {
	if len(series) < 2 {
		return series
	}
	first, err := time.Parse(monthLayout, series[0].Month)
	if err != nil {
		return series
	}
	last, err := time.Parse(monthLayout, series[len(series)-1].Month)
	if err != nil {
		return series
	}
	byMonth := make(map[string]MonthBucket, len(series))
	for _, b := range series {
		byMonth[b.Month] = b
	}
	var out []MonthBucket
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		key := m.Format(monthLayout)
		if b, ok := byMonth[key]; ok {
			out = append(out, b)
			continue
		}
		out = append(out, MonthBucket{Month: key})
	}
	return out
}
