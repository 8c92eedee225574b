package store

import (
	"context"
	"errors"
	"fmt"
)

// sliceRows iterates over canned rows of scalar columns
type sliceRows struct {
	data   [][]any
	i      int
	err    error
	closed bool
}

func (r *sliceRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *sliceRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d dest for %d cols", len(dest), len(row))
	}
	for k, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = row[k].(int64)
		case *string:
			*p = row[k].(string)
		default:
			return fmt.Errorf("scan: unsupported %T", d)
		}
	}
	return nil
}

func (r *sliceRows) Err() error { return r.err }
func (r *sliceRows) Close()     { r.closed = true }

type fakeQuerier struct {
	rows     *sliceRows
	queryErr error
	lastSQL  string
	lastArgs []any
}

func (f *fakeQuerier) Exec(context.Context, string, ...any) (CommandTag, error) {
	return nil, errors.New("not used")
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) Row {
	f.lastSQL, f.lastArgs = sql, args
	return oneRow{rows: f.rows, err: f.queryErr}
}

type oneRow struct {
	rows *sliceRows
	err  error
}

func (o oneRow) Scan(dest ...any) error {
	if o.err != nil {
		return o.err
	}
	if !o.rows.Next() {
		return errors.New("no rows")
	}
	return o.rows.Scan(dest...)
}

// fakePG is a TxRunner that can also Ping and Close
type fakePG struct {
	fakeQuerier
	pingErr  error
	closeErr error
	closed   bool
}

func (f *fakePG) Tx(_ context.Context, fn func(q RowQuerier) error) error { return fn(&f.fakeQuerier) }
func (f *fakePG) Ping(context.Context) error                             { return f.pingErr }
func (f *fakePG) Close() error                                           { f.closed = true; return f.closeErr }

type fakeCH struct {
	pingErr  error
	closeErr error
	closed   bool
	inserted map[string][][]any
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	if f.inserted == nil {
		f.inserted = map[string][][]any{}
	}
	f.inserted[table] = append(f.inserted[table], rows...)
	return nil
}
func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error               { f.closed = true; return f.closeErr }
