package repokit

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestWithBeginHooks_RunsHooksThenFn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := &fakeTx{inner: &recQ{}}
	r := WithBeginHooks(inner, ReadOnly, StatementTimeout(90*time.Second))

	err := r.Tx(ctx, func(q Queryer) error {
		_, err := q.Query(ctx, "SELECT 1")
		return err
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	want := []string{
		"SET TRANSACTION READ ONLY",
		"SET LOCAL statement_timeout = 90000",
		"SELECT 1",
	}
	if !reflect.DeepEqual(inner.inner.sqls, want) {
		t.Fatalf("statements = %v, want %v", inner.inner.sqls, want)
	}
	if inner.txCalls != 1 {
		t.Fatalf("txCalls = %d, want 1", inner.txCalls)
	}
}

func TestWithBeginHooks_HookErrorSkipsFn(t *testing.T) {
	t.Parallel()

	boom := errors.New("read only refused")
	inner := &fakeTx{inner: &recQ{execErr: boom}}
	r := WithBeginHooks(inner, ReadOnly)

	ran := false
	err := r.Tx(context.Background(), func(Queryer) error { ran = true; return nil })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if ran {
		t.Fatalf("fn must not run when a hook fails")
	}
}

func TestStatementTimeout_ZeroIsNoop(t *testing.T) {
	t.Parallel()

	q := &recQ{}
	if err := StatementTimeout(0)(context.Background(), q); err != nil {
		t.Fatalf("hook: %v", err)
	}
	if len(q.sqls) != 0 {
		t.Fatalf("zero timeout should not issue SQL, got %v", q.sqls)
	}
}

func TestWithBeginHooks_DelegatesOutsideTx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := &fakeTx{inner: &recQ{}}
	r := WithBeginHooks(inner, ReadOnly)

	_, _ = r.Exec(ctx, "UPDATE x SET a=$1", 7)
	_, _ = r.Query(ctx, "SELECT a FROM x WHERE b=$1", 9)
	_ = r.QueryRow(ctx, "SELECT a FROM x WHERE id=$1", "abc")

	want := []string{"UPDATE x SET a=$1", "SELECT a FROM x WHERE b=$1", "SELECT a FROM x WHERE id=$1"}
	if !reflect.DeepEqual(inner.sqls, want) {
		t.Fatalf("delegated = %v, want %v", inner.sqls, want)
	}
	if !reflect.DeepEqual(inner.args[2], []any{"abc"}) {
		t.Fatalf("args not forwarded: %v", inner.args)
	}
	if inner.txCalls != 0 || len(inner.inner.sqls) != 0 {
		t.Fatalf("plain statements must not open a tx or run hooks")
	}
}

func TestWithBeginHooks_PropagatesErrors(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("fn")
	txErr := errors.New("commit")

	r := WithBeginHooks(&fakeTx{inner: &recQ{}}, ReadOnly)
	if err := r.Tx(context.Background(), func(Queryer) error { return fnErr }); !errors.Is(err, fnErr) {
		t.Fatalf("fn error lost: %v", err)
	}
	r = WithBeginHooks(&fakeTx{inner: &recQ{}, err: txErr}, ReadOnly)
	if err := r.Tx(context.Background(), func(Queryer) error { return nil }); !errors.Is(err, txErr) {
		t.Fatalf("tx error lost: %v", err)
	}
}
