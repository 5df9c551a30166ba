package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when no GeoIP database was configured.
var ErrUnavailable = errors.New("geoip resolver unavailable")

// Resolver maps client IPs to ISO country codes using a MaxMind GeoIP2/GeoLite2
// country database. A nil *Resolver is valid and always reports ErrUnavailable,
// so callers can wire it unconditionally.
type Resolver struct {
	reader *geoip2.Reader
}

// Open loads the database at path. An empty path yields a nil resolver.
func Open(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// CountryCode returns the ISO country code for ip, or "" when unknown.
func (r *Resolver) CountryCode(ip string) (string, error) {
	if r == nil || r.reader == nil {
		return "", ErrUnavailable
	}
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "", fmt.Errorf("geoip: invalid ip %q", ip)
	}
	// private ranges never resolve; skip the lookup
	if parsed.IsLoopback() || parsed.IsPrivate() {
		return "", nil
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup country: %w", err)
	}
	if record == nil {
		return "", nil
	}
	return record.Country.IsoCode, nil
}

// Lookup adapts the resolver to the function shape the i18n middleware takes.
// It returns nil for a nil resolver so the middleware skips IP lookups.
func (r *Resolver) Lookup() func(ip string) (string, error) {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.CountryCode
}

// Close releases the database reader.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
