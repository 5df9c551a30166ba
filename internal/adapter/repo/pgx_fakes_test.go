package repo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// assign copies src into the pointer dest the way pgx would for the column
// types the repositories scan, including NULL into pointer targets.
func assign(dest, src any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("dest %T is not a pointer", dest)
	}
	target := dv.Elem()
	if src == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	sv := reflect.ValueOf(src)
	switch {
	case sv.Type().AssignableTo(target.Type()):
		target.Set(sv)
	case target.Kind() == reflect.Pointer && sv.Type().AssignableTo(target.Type().Elem()):
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(sv)
		target.Set(p)
	case sv.Type().ConvertibleTo(target.Type()):
		target.Set(sv.Convert(target.Type()))
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dest)
	}
	return nil
}

func scanValues(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d targets", len(values), len(dest))
	}
	for i := range dest {
		if err := assign(dest[i], values[i]); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.values == nil {
		return pgx.ErrNoRows
	}
	return scanValues(r.values, dest)
}

type testRowsBase struct{}

func (testRowsBase) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (testRowsBase) Conn() *pgx.Conn { return nil }

func (testRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (testRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (testRowsBase) RawValues() [][]byte { return nil }

type fakeRows struct {
	testRowsBase
	data   [][]any
	idx    int
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanValues(r.data[r.idx-1], dest)
}

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Close() { r.closed = true }

type call struct {
	query string
	args  []any
}

// fakeSQL records every statement and replays canned results.
type fakeSQL struct {
	calls    []call
	row      fakeRow
	rows     [][]any
	tag      pgconn.CommandTag
	execErr  error
	lastRows *fakeRows
}

func (f *fakeSQL) Exec(_ context.Context, q string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{query: q, args: args})
	return f.tag, f.execErr
}

func (f *fakeSQL) QueryRow(_ context.Context, q string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{query: q, args: args})
	return f.row
}

func (f *fakeSQL) Query(_ context.Context, q string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, call{query: q, args: args})
	f.lastRows = &fakeRows{data: f.rows}
	return f.lastRows, nil
}
