// Package report aggregates donations and expenses into the figures shown on
// the transparency page and the admin dashboard. Every function is pure and
// works on records already loaded by the caller.
package report

import (
	"sort"
	"strings"
	"time"

	"charity/internal/domain"
)

// OverdueAfter is how long a donation may stay unconfirmed before it is
// reported as overdue.
const OverdueAfter = 24 * time.Hour

// UncategorizedExpense is the bucket for expenses without a category.
const UncategorizedExpense = "Khác"

// Summary holds the headline totals.
type Summary struct {
	TotalDonations    int64   `json:"totalDonations"`
	DonationCount     int     `json:"donationCount"`
	UniqueDonors      int     `json:"uniqueDonors"`
	AverageDonation   float64 `json:"averageDonation"`
	CampaignDonations int64   `json:"campaignDonations"`
	GeneralDonations  int64   `json:"generalDonations"`
	TotalExpenses     int64   `json:"totalExpenses"`
	ExpenseCount      int     `json:"expenseCount"`
	AverageExpense    float64 `json:"averageExpense"`
	Balance           int64   `json:"balance"`
	UtilizationRate   float64 `json:"utilizationRate"`
}

// SafeDivide returns num/den, or fallback when den is zero.
func SafeDivide(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

// amount treats malformed negative amounts as zero; the row is still
// counted by the caller.
func amount(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// Confirmed returns only the confirmed donations, preserving order.
func Confirmed(donations []domain.Donation) []domain.Donation {
	out := make([]domain.Donation, 0, len(donations))
	for _, d := range donations {
		if d.IsConfirmed {
			out = append(out, d)
		}
	}
	return out
}

// Summarize computes the headline totals. Unconfirmed donations are ignored
// so callers may pass an unfiltered list.
func Summarize(donations []domain.Donation, expenses []domain.Expense) Summary {
	var s Summary
	donors := make(map[string]struct{})
	for _, d := range donations {
		if !d.IsConfirmed {
			continue
		}
		a := amount(d.Amount)
		s.TotalDonations += a
		s.DonationCount++
		if d.IsGeneral() {
			s.GeneralDonations += a
		} else {
			s.CampaignDonations += a
		}
		if name := d.DisplayName(); name != "" {
			donors[name] = struct{}{}
		}
	}
	s.UniqueDonors = len(donors)

	for _, e := range expenses {
		s.TotalExpenses += amount(e.Amount)
		s.ExpenseCount++
	}

	s.AverageDonation = SafeDivide(float64(s.TotalDonations), float64(s.DonationCount), 0)
	s.AverageExpense = SafeDivide(float64(s.TotalExpenses), float64(s.ExpenseCount), 0)
	s.Balance = s.TotalDonations - s.TotalExpenses
	s.UtilizationRate = UtilizationRate(s.TotalExpenses, s.TotalDonations)
	return s
}

// UtilizationRate is the share of donations spent, as a percentage.
func UtilizationRate(totalExpenses, totalDonations int64) float64 {
	// scale first so whole percentages stay exact in float64
	return SafeDivide(float64(totalExpenses)*100, float64(totalDonations), 0)
}

// CategoryTotal is one slice of the expense distribution.
type CategoryTotal struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}

// ExpenseCategories groups expenses by category, largest first. Expenses with
// no category land in UncategorizedExpense.
func ExpenseCategories(expenses []domain.Expense) []CategoryTotal {
	idx := make(map[string]int)
	var out []CategoryTotal
	for _, e := range expenses {
		name := UncategorizedExpense
		if e.Category != nil && strings.TrimSpace(*e.Category) != "" {
			name = strings.TrimSpace(*e.Category)
		}
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, CategoryTotal{Name: name})
		}
		out[i].Total += amount(e.Amount)
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// CampaignTotal is the per-activity breakdown. ActivityID is nil for the
// general bucket.
type CampaignTotal struct {
	ActivityID      *string `json:"activityId"`
	Title           string  `json:"title"`
	Donations       int64   `json:"donations"`
	DonationCount   int     `json:"donationCount"`
	Expenses        int64   `json:"expenses"`
	Balance         int64   `json:"balance"`
	UtilizationRate float64 `json:"utilizationRate"`
}

// GeneralTitle labels the bucket of donations and expenses with no activity.
const GeneralTitle = "Quỹ chung"

// ByCampaign splits confirmed donations and all expenses per activity. Every
// activity passed in appears even without records; the general bucket is
// appended last and only when it has records. Records pointing to activities
// that are not in the list are folded into the general bucket.
func ByCampaign(donations []domain.Donation, expenses []domain.Expense, activities []domain.Activity) []CampaignTotal {
	out := make([]CampaignTotal, 0, len(activities)+1)
	idx := make(map[string]int, len(activities))
	for _, a := range activities {
		id := a.ID
		idx[id] = len(out)
		out = append(out, CampaignTotal{ActivityID: &id, Title: a.Title})
	}
	var general CampaignTotal
	generalUsed := false
	bucket := func(activityID *string) *CampaignTotal {
		if activityID != nil {
			if i, ok := idx[*activityID]; ok {
				return &out[i]
			}
		}
		generalUsed = true
		return &general
	}
	for _, d := range donations {
		if !d.IsConfirmed {
			continue
		}
		b := bucket(d.ActivityID)
		b.Donations += amount(d.Amount)
		b.DonationCount++
	}
	for _, e := range expenses {
		b := bucket(e.ActivityID)
		b.Expenses += amount(e.Amount)
	}
	if generalUsed {
		general.Title = GeneralTitle
		out = append(out, general)
	}
	for i := range out {
		out[i].Balance = out[i].Donations - out[i].Expenses
		out[i].UtilizationRate = UtilizationRate(out[i].Expenses, out[i].Donations)
	}
	return out
}

// SplitGeneral recomputes the campaign/general split of s from campaigns, so
// donations to activities outside the campaign list count as general exactly
// as ByCampaign reports them.
func (s Summary) SplitGeneral(campaigns []CampaignTotal) Summary {
	s.CampaignDonations, s.GeneralDonations = 0, 0
	for _, c := range campaigns {
		if c.ActivityID == nil {
			s.GeneralDonations += c.Donations
		} else {
			s.CampaignDonations += c.Donations
		}
	}
	return s
}
