// Package export renders donation and expense listings as CSV, XLSX and ZIP
// downloads for the back office.
package export

import (
	"strconv"
	"time"

	"charity/internal/domain"
	"charity/internal/report"
)

// Table is a header plus string rows, shared by every output format.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

const dateLayout = "2006-01-02 15:04"

var statusLabels = map[domain.DonationStatus]string{
	domain.DonationConfirmed: "Đã xác nhận",
	domain.DonationPending:   "Chờ xác nhận",
	domain.DonationOverdue:   "Quá hạn",
}

// DonationTable builds the donation export. titles maps activity IDs to
// their titles; unknown or missing IDs are shown as the general fund.
func DonationTable(donations []domain.Donation, titles map[string]string, loc *time.Location, now time.Time) Table {
	if loc == nil {
		loc = time.UTC
	}
	t := Table{
		Sheet:  "Donations",
		Header: []string{"Ngày", "Người ủng hộ", "Số tiền", "Lời nhắn", "Hoạt động", "Trạng thái", "Công khai", "Ẩn danh"},
	}
	for _, d := range donations {
		name := "Ẩn danh"
		if !d.IsAnonymous && d.Name != nil {
			name = *d.Name
		}
		t.Rows = append(t.Rows, []string{
			d.CreatedAt.In(loc).Format(dateLayout),
			name,
			strconv.FormatInt(d.Amount, 10),
			d.Message,
			activityTitle(d.ActivityID, titles),
			statusLabels[report.StatusOf(d, now)],
			yesNo(d.IsPublic),
			yesNo(d.IsAnonymous),
		})
	}
	return t
}

// ExpenseTable builds the expense export.
func ExpenseTable(expenses []domain.Expense, titles map[string]string, loc *time.Location) Table {
	if loc == nil {
		loc = time.UTC
	}
	t := Table{
		Sheet:  "Expenses",
		Header: []string{"Ngày", "Khoản chi", "Số tiền", "Danh mục", "Hoạt động", "Mô tả"},
	}
	for _, e := range expenses {
		category := report.UncategorizedExpense
		if e.Category != nil && *e.Category != "" {
			category = *e.Category
		}
		t.Rows = append(t.Rows, []string{
			e.CreatedAt.In(loc).Format(dateLayout),
			e.Title,
			strconv.FormatInt(e.Amount, 10),
			category,
			activityTitle(e.ActivityID, titles),
			e.Description,
		})
	}
	return t
}

func activityTitle(id *string, titles map[string]string) string {
	if id != nil {
		if title, ok := titles[*id]; ok {
			return title
		}
	}
	return report.GeneralTitle
}

func yesNo(v bool) string {
	if v {
		return "Có"
	}
	return "Không"
}
