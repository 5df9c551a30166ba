package handlers

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"charity/internal/domain"
	"charity/internal/middleware"
	"charity/internal/report"
)

const defaultRecentLimit = 10

type transparencyResponse struct {
	Summary         report.Summary         `json:"summary"`
	Monthly         []report.MonthBucket   `json:"monthly"`
	Categories      []report.CategoryTotal `json:"categories"`
	Campaigns       []report.CampaignTotal `json:"campaigns"`
	RecentDonations []donationDTO          `json:"recentDonations"`
	RecentExpenses  []expenseDTO           `json:"recentExpenses"`
	PendingCount    *int                   `json:"pendingCount,omitempty"`
	OverdueCount    *int                   `json:"overdueCount,omitempty"`
	GeneratedAt     time.Time              `json:"generatedAt"`
}

// Transparency serves the public accountability page: totals, the monthly
// series, expense categories, per-campaign split and the latest records.
// Staff additionally see how many pledges await confirmation.
func (a *App) Transparency(w http.ResponseWriter, r *http.Request) {
	since, until, err := queryYear(r, a.loc())
	if err != nil {
		a.fail(w, r, err, "parse transparency year")
		return
	}
	contiguous, err := queryBool(r, "contiguous")
	if err != nil {
		a.fail(w, r, err, "parse transparency params")
		return
	}
	recentLimit := a.RecentLimit
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	staff := middleware.IsStaff(r.Context())
	now := a.now()

	var (
		activities  []domain.Activity
		confirmed   []domain.Donation
		recent      []domain.Donation
		unconfirmed []domain.Donation
		expenses    []domain.Expense
	)
	yes, no := true, false
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		activities, err = a.Activities.List(ctx, domain.ActivityFilter{Published: &yes})
		return err
	})
	g.Go(func() error {
		var err error
		confirmed, err = a.Donations.List(ctx, domain.DonationFilter{Confirmed: &yes, Since: since, Until: until})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = a.Donations.List(ctx, domain.DonationFilter{Confirmed: &yes, OnlyPublic: true, Since: since, Until: until, Limit: recentLimit})
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = a.Expenses.List(ctx, domain.ExpenseFilter{Since: since, Until: until})
		return err
	})
	if staff {
		g.Go(func() error {
			var err error
			unconfirmed, err = a.Donations.List(ctx, domain.DonationFilter{Confirmed: &no, Since: since, Until: until})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		a.fail(w, r, err, "load transparency failed")
		return
	}

	monthly := report.Monthly(confirmed, expenses, a.loc())
	if contiguous != nil && *contiguous {
		monthly = report.FillMonths(monthly)
	}
	recentExpenses := expenses
	if len(recentExpenses) > recentLimit {
		recentExpenses = recentExpenses[:recentLimit]
	}

	campaigns := report.ByCampaign(confirmed, expenses, activities)
	resp := transparencyResponse{
		Summary:         report.Summarize(confirmed, expenses).SplitGeneral(campaigns),
		Monthly:         nonNilMonths(monthly),
		Categories:      nonNilCategories(report.ExpenseCategories(expenses)),
		Campaigns:       campaigns,
		RecentDonations: a.donationDTOs(recent, true),
		RecentExpenses:  toExpenseDTOs(recentExpenses),
		GeneratedAt:     now.UTC(),
	}
	if staff {
		overdue := report.CountOverdue(unconfirmed, now)
		pending := len(unconfirmed) - overdue
		resp.PendingCount = &pending
		resp.OverdueCount = &overdue
	}
	a.json(w, http.StatusOK, resp)
}
