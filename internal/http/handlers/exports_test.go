package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"charity/internal/domain"
	"charity/internal/export"
)

func seedExportData(s *stores) {
	act := domain.Activity{ID: uuid.NewString(), Title: "Trung thu", Slug: "trung-thu"}
	s.activities.items = append(s.activities.items, act)
	seedDonation(s, domain.Donation{Name: strPtr("Nguyễn, \"Lan\""), Amount: 100000, IsConfirmed: true, ActivityID: &act.ID, CreatedAt: testNow.Add(-time.Hour)})
	seedDonation(s, domain.Donation{Name: strPtr("Minh"), Amount: 50000, IsAnonymous: true, CreatedAt: testNow.Add(-30 * time.Hour)})
	s.expenses.items = append(s.expenses.items, domain.Expense{ID: uuid.NewString(), Title: "Bánh", Amount: 20000, CreatedAt: testNow})
}

func TestDonationsExportCSV(t *testing.T) {
	app, s := newTestApp()
	seedExportData(s)

	req := asStaff(httptest.NewRequest(http.MethodGet, "/api/donations/export", nil), "editor", "u-1")
	rr := serve(app.DonationsExport, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != contentTypeCSV {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="donations-20240615.csv"` {
		t.Fatalf("content disposition = %q", cd)
	}
	rows, err := export.ReadCSV(rr.Body.Bytes())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"Nguyễn, ""Lan"""`) {
		t.Fatalf("quoted name missing from %q", body)
	}
	if strings.Contains(body, "Minh") {
		t.Fatalf("anonymous donor leaked into export")
	}
}

func TestDonationsExportXLSX(t *testing.T) {
	app, s := newTestApp()
	seedExportData(s)

	req := asStaff(httptest.NewRequest(http.MethodGet, "/api/donations/export?format=xlsx", nil), "editor", "u-1")
	rr := serve(app.DonationsExport, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	if len(f.GetSheetList()) != 1 {
		t.Fatalf("sheets = %v", f.GetSheetList())
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	app, _ := newTestApp()
	req := asStaff(httptest.NewRequest(http.MethodGet, "/api/expenses/export?format=pdf", nil), "editor", "u-1")
	rr := serve(app.ExpensesExport, req)
	if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), "bad_format") {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
}

func TestExportBundle(t *testing.T) {
	app, s := newTestApp()
	seedExportData(s)

	req := asStaff(httptest.NewRequest(http.MethodGet, "/api/export/bundle", nil), "admin", "u-1")
	rr := serve(app.ExportBundle, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	names := map[string]int{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		rows, err := export.ReadCSV(data)
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		names[f.Name] = len(rows)
	}
	if names["donations.csv"] != 3 || names["expenses.csv"] != 2 {
		t.Fatalf("bundle contents = %v", names)
	}
}

func TestDonationsExportGeneralFund(t *testing.T) {
	app, s := newTestApp()
	seedExportData(s)

	req := asStaff(httptest.NewRequest(http.MethodGet, "/api/donations/export?activityId=general", nil), "editor", "u-1")
	rr := serve(app.DonationsExport, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !s.donations.lastFilter.General {
		t.Fatalf("general filter not applied: %+v", s.donations.lastFilter)
	}
	rows, err := export.ReadCSV(rr.Body.Bytes())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 general donation", len(rows))
	}
}

func TestExpensesFilterGeneralAndUncategorized(t *testing.T) {
	app, s := newTestApp()
	actID := uuid.NewString()
	s.expenses.items = append(s.expenses.items,
		domain.Expense{ID: uuid.NewString(), Title: "Gạo", Amount: 10000, ActivityID: &actID, CreatedAt: testNow},
		domain.Expense{ID: uuid.NewString(), Title: "Xăng", Amount: 20000, Category: strPtr("Khác"), CreatedAt: testNow},
		domain.Expense{ID: uuid.NewString(), Title: "Nước", Amount: 30000, Category: strPtr("Ăn uống"), CreatedAt: testNow},
	)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"general", "?activityId=general", 2},
		{"uncategorized label", "?category=" + url.QueryEscape("Khác"), 2},
		{"named category", "?category=" + url.QueryEscape("Ăn uống"), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(app.ExpensesList, httptest.NewRequest(http.MethodGet, "/api/expenses"+tc.query, nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
			}
			var body struct {
				Items []expenseDTO `json:"items"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Items) != tc.want {
				t.Fatalf("items = %d, want %d", len(body.Items), tc.want)
			}
		})
	}
}
