package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"charity/internal/domain"
	"charity/internal/export"
	"charity/internal/i18n"
	"charity/pkg/zip"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeZIP  = "application/zip"
)

// exportFormat reads ?format=, defaulting to csv.
func (a *App) exportFormat(w http.ResponseWriter, r *http.Request) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "":
		return "csv", true
	case "csv", "xlsx":
		return format, true
	}
	a.error(w, r, http.StatusBadRequest, i18n.MsgBadFormat, format)
	return "", false
}

func (a *App) activityTitles(r *http.Request) (map[string]string, error) {
	activities, err := a.Activities.List(r.Context(), domain.ActivityFilter{})
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(activities))
	for _, act := range activities {
		titles[act.ID] = act.Title
	}
	return titles, nil
}

// exportData loads every donation and expense matching the query plus the
// activity titles used to label them.
func (a *App) exportData(r *http.Request, withDonations, withExpenses bool) ([]domain.Donation, []domain.Expense, map[string]string, error) {
	var (
		dFilter   domain.DonationFilter
		eFilter   domain.ExpenseFilter
		donations []domain.Donation
		expenses  []domain.Expense
		titles    map[string]string
		err       error
	)
	// only the filters of the exported tables are parsed
	if withDonations {
		if dFilter, err = a.donationFilter(r); err != nil {
			return nil, nil, nil, err
		}
		dFilter.Limit, dFilter.Offset = 0, 0
	}
	if withExpenses {
		if eFilter, err = a.expenseFilter(r); err != nil {
			return nil, nil, nil, err
		}
		eFilter.Limit, eFilter.Offset = 0, 0
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		titles, err = a.activityTitles(r.WithContext(ctx))
		return err
	})
	if withDonations {
		g.Go(func() error {
			var err error
			donations, err = a.Donations.List(ctx, dFilter)
			return err
		})
	}
	if withExpenses {
		g.Go(func() error {
			var err error
			expenses, err = a.Expenses.List(ctx, eFilter)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return donations, expenses, titles, nil
}

func (a *App) writeTable(w http.ResponseWriter, r *http.Request, format, base string, t export.Table) {
	var (
		body []byte
		err  error
		ct   string
	)
	switch format {
	case "xlsx":
		body, err = export.XLSX(t)
		ct = contentTypeXLSX
	default:
		body, err = export.CSV(t)
		ct = contentTypeCSV
	}
	if err != nil {
		a.fail(w, r, err, "render export failed")
		return
	}
	a.attachment(w, ct, fmt.Sprintf("%s-%s.%s", base, a.now().In(a.loc()).Format("20060102"), format), body)
}

func (a *App) attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (a *App) DonationsExport(w http.ResponseWriter, r *http.Request) {
	format, ok := a.exportFormat(w, r)
	if !ok {
		return
	}
	donations, _, titles, err := a.exportData(r, true, false)
	if err != nil {
		a.fail(w, r, err, "load donations export failed")
		return
	}
	a.writeTable(w, r, format, "donations", export.DonationTable(donations, titles, a.loc(), a.now()))
}

func (a *App) ExpensesExport(w http.ResponseWriter, r *http.Request) {
	format, ok := a.exportFormat(w, r)
	if !ok {
		return
	}
	_, expenses, titles, err := a.exportData(r, false, true)
	if err != nil {
		a.fail(w, r, err, "load expenses export failed")
		return
	}
	a.writeTable(w, r, format, "expenses", export.ExpenseTable(expenses, titles, a.loc()))
}

// ExportBundle zips donations.csv and expenses.csv together.
func (a *App) ExportBundle(w http.ResponseWriter, r *http.Request) {
	donations, expenses, titles, err := a.exportData(r, true, true)
	if err != nil {
		a.fail(w, r, err, "load export bundle failed")
		return
	}
	now := a.now()
	donationsCSV, err := export.CSV(export.DonationTable(donations, titles, a.loc(), now))
	if err != nil {
		a.fail(w, r, err, "render donations csv failed")
		return
	}
	expensesCSV, err := export.CSV(export.ExpenseTable(expenses, titles, a.loc()))
	if err != nil {
		a.fail(w, r, err, "render expenses csv failed")
		return
	}
	modified := now.In(a.loc())
	body, err := zip.Archive([]zip.File{
		{Name: "donations.csv", Data: donationsCSV, Modified: modified},
		{Name: "expenses.csv", Data: expensesCSV, Modified: modified},
	})
	if err != nil {
		a.fail(w, r, err, "build export bundle failed")
		return
	}
	a.attachment(w, contentTypeZIP, fmt.Sprintf("transparency-%s.zip", modified.Format("20060102")), body)
}
