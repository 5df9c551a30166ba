package geoip

import (
	"errors"
	"testing"
)

func TestOpenEmptyPathReturnsNil(t *testing.T) {
	r, err := Open("  ")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if r != nil {
		t.Fatalf("Open() = %#v, want nil", r)
	}
	if r.Lookup() != nil {
		t.Fatalf("Lookup() on nil resolver should be nil")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() on nil resolver error = %v", err)
	}
}

func TestNilResolverUnavailable(t *testing.T) {
	var r *Resolver
	if _, err := r.CountryCode("203.0.113.4"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("CountryCode() error = %v, want %v", err, ErrUnavailable)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatalf("expected error for missing database")
	}
}
