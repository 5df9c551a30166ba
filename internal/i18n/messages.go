// Package i18n holds the user-facing message catalog (Vietnamese first,
// English second) and text helpers that depend on Unicode tables.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The JSON `code` field of error responses uses the same values.
const (
	MsgInvalidPayload = "invalid_payload"
	MsgInvalidInput   = "invalid_input"
	MsgNotFound       = "not_found"
	MsgConflict       = "conflict"
	MsgUnauthorized   = "unauthorized"
	MsgForbidden      = "forbidden"
	MsgRateLimited    = "rate_limited"
	MsgInternal       = "internal"
	MsgUnavailable    = "unavailable"
	MsgBadFormat      = "bad_format"
)

var entries = map[string][2]string{
	MsgInvalidPayload: {"Dữ liệu gửi lên không hợp lệ", "Invalid request payload"},
	MsgInvalidInput:   {"Thông tin không hợp lệ: %s", "Invalid input: %s"},
	MsgNotFound:       {"Không tìm thấy dữ liệu", "Not found"},
	MsgConflict:       {"Dữ liệu đã tồn tại", "Already exists"},
	MsgUnauthorized:   {"Vui lòng đăng nhập", "Authentication required"},
	MsgForbidden:      {"Bạn không có quyền thực hiện thao tác này", "You are not allowed to do this"},
	MsgRateLimited:    {"Bạn thao tác quá nhanh, vui lòng thử lại sau", "Too many requests, try again later"},
	MsgInternal:       {"Đã có lỗi xảy ra, vui lòng thử lại", "Something went wrong, please try again"},
	MsgUnavailable:    {"Dịch vụ tạm thời không khả dụng", "Service temporarily unavailable"},
	MsgBadFormat:      {"Định dạng không được hỗ trợ: %s", "Unsupported format: %s"},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Vietnamese))
	for key, msg := range entries {
		if err := b.SetString(language.Vietnamese, key, msg[0]); err != nil {
			panic(err)
		}
		if err := b.SetString(language.English, key, msg[1]); err != nil {
			panic(err)
		}
	}
	return b
}

// Tag maps the locale codes used by the middleware to a language tag.
func Tag(locale string) language.Tag {
	if locale == "en" {
		return language.English
	}
	return language.Vietnamese
}

// Printer returns a message printer for locale ("vi" or "en").
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Tag(locale), message.Catalog(cat))
}

// T translates key for locale, formatting args into the message.
func T(locale, key string, args ...any) string {
	return Printer(locale).Sprintf(key, args...)
}
