package i18n

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Trung thu ấm áp 2024", "trung-thu-am-ap-2024"},
		{"Đường đến trường", "duong-den-truong"},
		{"  Áo ấm cho em -- vùng cao! ", "ao-am-cho-em-vung-cao"},
		{"Hello, World", "hello-world"},
		{"!!!", ""},
	}
	for _, tc := range tests {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFoldKeepsASCII(t *testing.T) {
	if got := Fold("Quỹ Từ Thiện"); got != "Quy Tu Thien" {
		t.Fatalf("Fold() = %q", got)
	}
}

func TestTranslate(t *testing.T) {
	if got := T("vi", MsgNotFound); got != "Không tìm thấy dữ liệu" {
		t.Fatalf("vi not_found = %q", got)
	}
	if got := T("en", MsgNotFound); got != "Not found" {
		t.Fatalf("en not_found = %q", got)
	}
	if got := T("en", MsgInvalidInput, "amount: must be positive"); got != "Invalid input: amount: must be positive" {
		t.Fatalf("en invalid_input = %q", got)
	}
	if got := T("fr", MsgInternal); got != "Đã có lỗi xảy ra, vui lòng thử lại" {
		t.Fatalf("unknown locale should fall back to vi, got %q", got)
	}
}
