package repo

import (
	"context"
	"errors"

	"remd/internal/platform/store"
	dom "remd/internal/services/napr/domain"
)

// OutcomesDDL documents the audit table the sink appends to
const OutcomesDDL = `CREATE TABLE IF NOT EXISTS remd.napr_outcomes (
    run_id       String,
    window_start DateTime,
    seq          UInt32,
    actor_id     Int64,
    item_id      String,
    status       LowCardinality(String),
    elapsed_ms   UInt64
) ENGINE = MergeTree
ORDER BY (window_start, run_id, seq)`

// CHSink appends run outcomes to a ClickHouse table
type CHSink struct {
	ch    store.Clickhouse
	table string
}

// NewCHSink returns nil when ch is nil so callers can wire it unconditionally
func NewCHSink(ch store.Clickhouse, table string) *CHSink {
	if ch == nil {
		return nil
	}
	return &CHSink{ch: ch, table: table}
}

// Record appends one row per outcome; an empty report writes nothing
func (s *CHSink) Record(ctx context.Context, rep dom.RunReport) error {
	if s == nil {
		return errors.New("napr: nil outcome sink")
	}
	if rep.Empty() {
		return nil
	}
	rows := make([][]any, 0, len(rep.Outcomes))
	for _, o := range rep.Outcomes {
		rows = append(rows, []any{
			rep.RunID,
			rep.Window.Start,
			uint32(o.Seq),
			o.ActorID,
			o.ItemID,
			string(o.Status),
			uint64(o.Elapsed.Milliseconds()),
		})
	}
	return s.ch.Insert(ctx, s.table, rows)
}
