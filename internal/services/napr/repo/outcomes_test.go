package repo

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	dom "remd/internal/services/napr/domain"
)

type fakeCH struct {
	table string
	rows  [][]any
	err   error
	calls int
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.calls++
	f.table, f.rows = table, rows
	return f.err
}
func (f *fakeCH) Close() error { return nil }

func TestCHSink_Record(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{}
	s := NewCHSink(ch, "remd.napr_outcomes")
	w := window(t)
	rep := dom.RunReport{
		RunID:  "run-1",
		Window: w,
		Outcomes: []dom.DispatchOutcome{
			{Seq: 1, ActorID: 7, ItemID: "n-100", Status: dom.StatusRegistered, Elapsed: 1500 * time.Millisecond},
			{Seq: 2, ActorID: 9, ItemID: "n-101", Status: dom.StatusError, Elapsed: 20 * time.Millisecond},
		},
	}
	if err := s.Record(context.Background(), rep); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if ch.table != "remd.napr_outcomes" || len(ch.rows) != 2 {
		t.Fatalf("insert = %s %v", ch.table, ch.rows)
	}
	want := []any{"run-1", w.Start, uint32(1), int64(7), "n-100", "REGISTERED", uint64(1500)}
	if !reflect.DeepEqual(ch.rows[0], want) {
		t.Fatalf("row = %#v\nwant %#v", ch.rows[0], want)
	}
	if ch.rows[1][5] != "ERROR" {
		t.Fatalf("status = %v", ch.rows[1][5])
	}
}

func TestCHSink_EmptyAndErrors(t *testing.T) {
	t.Parallel()

	if NewCHSink(nil, "t") != nil {
		t.Fatal("nil clickhouse should give a nil sink")
	}

	ch := &fakeCH{}
	if err := NewCHSink(ch, "t").Record(context.Background(), dom.RunReport{}); err != nil || ch.calls != 0 {
		t.Fatalf("empty report should not insert: %v calls=%d", err, ch.calls)
	}

	boom := errors.New("ch down")
	ch = &fakeCH{err: boom}
	rep := dom.RunReport{Outcomes: []dom.DispatchOutcome{{Seq: 1}}}
	if err := NewCHSink(ch, "t").Record(context.Background(), rep); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	var nilSink *CHSink
	if nilSink.Record(context.Background(), rep) == nil {
		t.Fatal("nil sink should error")
	}
}
