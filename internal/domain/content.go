package domain

import (
	"encoding/json"
	"regexp"
	"time"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9]+([._-][a-z0-9]+)*$`)

// ContentBlock is an editable section of a public page, keyed like "home.hero".
type ContentBlock struct {
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}

// Setting is a site-wide configuration value.
type Setting struct {
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}

// ValidateKey checks content and setting keys.
func ValidateKey(key string) error {
	if len(key) == 0 || len(key) > 100 || !keyPattern.MatchString(key) {
		return Invalid("key", "must be lowercase dotted identifier")
	}
	return nil
}
