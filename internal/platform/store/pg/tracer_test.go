package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestTracer_LevelsAndCompaction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	root := zerolog.New(&buf).Level(zerolog.ErrorLevel)
	tr := Tracer(root)

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT\n\t1\n   FROM  t", ElapsedUS: 1500})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 2", Slow: true})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 3", Err: errors.New("relation missing")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("tracer should log every query regardless of root level, got %d lines:\n%s", len(lines), buf.String())
	}
	checks := []struct{ level, sql string }{
		{`"level":"info"`, `"sql":"SELECT 1 FROM t"`},
		{`"level":"warn"`, `"sql":"SELECT 2"`},
		{`"level":"error"`, `"sql":"SELECT 3"`},
	}
	for i, c := range checks {
		if !strings.Contains(lines[i], c.level) || !strings.Contains(lines[i], c.sql) {
			t.Fatalf("line %d = %s, want %s and %s", i, lines[i], c.level, c.sql)
		}
		if !strings.Contains(lines[i], `"component":"pg"`) {
			t.Fatalf("line %d missing component: %s", i, lines[i])
		}
	}
	if !strings.Contains(lines[0], `"elapsed_ms":1.5`) {
		t.Fatalf("elapsed not in ms: %s", lines[0])
	}
}
