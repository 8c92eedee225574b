package repo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	perr "remd/internal/platform/errors"
	"remd/internal/platform/store"
	dom "remd/internal/services/napr/domain"
)

func window(t *testing.T) dom.TimeWindow {
	t.Helper()
	start := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	w, err := dom.NewTimeWindow(start, start.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestCandidateQuery_SQL(t *testing.T) {
	t.Parallel()

	w := window(t)
	sql, args, err := CandidateQuery(w).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}

	for _, want := range []string{
		"SELECT r.id_user_send, r.id_res, me.ds FROM results r",
		"JOIN dep_hsp dh ON dh.id_hsp = r.id_hsp",
		"JOIN mkb m ON m.mkb = dh.mkb",
		"JOIN measur me ON me.id_hsp = dh.id_hsp",
		"JOIN analysis a ON a.id_anal = r.id_anal",
		"JOIN user_sign us ON us.id_user = r.id_user_send",
		"JOIN users u ON u.id_user = r.id_user_send",
		"dh.id_dephsp = (SELECT MAX(d2.id_dephsp) FROM dep_hsp d2 WHERE d2.id_hsp = r.id_hsp)",
		"dh.mkb IS NOT NULL",
		"me.ds IS NOT NULL",
		"us.fingerprint IS NOT NULL",
		"u.d_bir IS NOT NULL",
		"u.snils IS NOT NULL",
		"u.prvs IS NOT NULL",
		"u.prvs_v015 IS NOT NULL",
		"u.id_nsipost IS NOT NULL",
		"u.old_mark IS NULL",
		"r.date_in BETWEEN $1 AND $2",
		"ORDER BY r.id_user_send, r.id_res",
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("query missing %q:\n%s", want, sql)
		}
	}
	want := []any{w.Start.Unix(), w.End.Unix()}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	if w.End.Unix()-w.Start.Unix() != 86400 {
		t.Fatalf("window should span one UTC day")
	}
}

// rowsOf is a canned result set of (actor, res, ds)
type rowsOf struct {
	data [][3]any
	i    int
	err  error
}

func (r *rowsOf) Next() bool { r.i++; return r.i <= len(r.data) }
func (r *rowsOf) Err() error { return r.err }
func (r *rowsOf) Close()     {}
func (r *rowsOf) Scan(dst ...any) error {
	row := r.data[r.i-1]
	*dst[0].(*int64) = row[0].(int64)
	*dst[1].(*int64) = row[1].(int64)
	*dst[2].(*string) = row[2].(string)
	return nil
}

type fakeQ struct {
	rows *rowsOf
	err  error
	sql  string
}

func (f *fakeQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row            { return nil }
func (f *fakeQ) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	f.sql = sql
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestQueryInWindow_MapsRows(t *testing.T) {
	t.Parallel()

	q := &fakeQ{rows: &rowsOf{data: [][3]any{
		{int64(7), int64(100), "J06.9"},
		{int64(9), int64(101), "I10"},
		{int64(7), int64(102), "J06.9"},
	}}}
	got, err := NewPG().Bind(q).QueryInWindow(context.Background(), window(t))
	if err != nil {
		t.Fatalf("QueryInWindow: %v", err)
	}
	want := []dom.CandidateRecord{
		{ActorID: 7, ItemID: "n-100", Diagnosis: "J06.9"},
		{ActorID: 9, ItemID: "n-101", Diagnosis: "I10"},
		{ActorID: 7, ItemID: "n-102", Diagnosis: "J06.9"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
	if !strings.HasPrefix(q.sql, "SELECT r.id_user_send") {
		t.Fatalf("unexpected sql %q", q.sql)
	}
}

func TestQueryInWindow_WrapsStoreErrors(t *testing.T) {
	t.Parallel()

	boom := fmt.Errorf("dial: %w", errors.New("connection refused"))
	_, err := NewPG().Bind(&fakeQ{err: boom}).QueryInWindow(context.Background(), window(t))
	if !errors.Is(err, boom) {
		t.Fatalf("cause lost: %v", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("code = %v, want db", perr.CodeOf(err))
	}

	iter := errors.New("conn reset mid-stream")
	_, err = NewPG().Bind(&fakeQ{rows: &rowsOf{err: iter}}).QueryInWindow(context.Background(), window(t))
	if !errors.Is(err, iter) {
		t.Fatalf("iteration error lost: %v", err)
	}
}
