package pg

import (
	"context"
	"errors"
	"testing"

	kit "remd/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_AppliesConfig(t *testing.T) {
	kit.Serial(t)

	var got *pgxpool.Config
	boom := errors.New("stop before dialing")
	kit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		got = c
		return nil, boom
	})

	_, err := Open(context.Background(), Config{
		URL:      "postgres://u:p@localhost:5432/remd",
		MaxConns: 3,
		AppName:  "remd-napr",
	}, nil, func(c *pgxpool.Config) { c.MinConns = 1 })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if got == nil {
		t.Fatal("pool constructor not called")
	}
	if got.MaxConns != 3 || got.MinConns != 1 {
		t.Fatalf("pool sizing = %d/%d", got.MaxConns, got.MinConns)
	}
	if got.ConnConfig.RuntimeParams["application_name"] != "remd-napr" {
		t.Fatalf("application_name = %q", got.ConnConfig.RuntimeParams["application_name"])
	}
}

func TestOpen_BadURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "::"}, nil, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	kit.MustNotPanic(t, p.Close)
	kit.MustNotPanic(t, (&PG{}).Close)
}
