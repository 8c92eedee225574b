package repokit

import (
	"context"

	"remd/internal/platform/store"
)

// recQ records every statement it sees
type recQ struct {
	sqls    []string
	args    [][]any
	execErr error
}

func (f *recQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	return nil, f.execErr
}

func (f *recQ) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	return nil, nil
}

func (f *recQ) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	return nil
}

// fakeTx hands its recQ to fn and reports err after fn succeeds
type fakeTx struct {
	recQ
	inner   *recQ
	err     error
	txCalls int
}

func (f *fakeTx) Tx(_ context.Context, fn func(q Queryer) error) error {
	f.txCalls++
	if err := fn(f.inner); err != nil {
		return err
	}
	return f.err
}

var (
	_ Queryer  = (*recQ)(nil)
	_ TxRunner = (*fakeTx)(nil)
)
