package guardrails

import (
	"context"
	"time"

	"remd/internal/modkit/repokit"
	perr "remd/internal/platform/errors"
	"remd/internal/platform/logger"
)

// ErrLeaseHeld signals another run owns the day already
var ErrLeaseHeld = perr.Conflictf("napr: day lease already held")

// leaseClass namespaces napr advisory locks ("NAPR")
const leaseClass int32 = 0x4E415052

// LeaseKey maps a window day to the advisory lock object id (yyyymmdd)
func LeaseKey(day time.Time) int32 {
	y, m, d := day.Date()
	return int32(y*10000 + int(m)*100 + d)
}

// Lease runs do while holding a transaction-scoped advisory lock for the day.
// The lease transaction and its pooled connection stay open for the whole run, so the
// pool needs a second connection for the candidate query. The lock goes with the
// transaction, so it is released even if the process dies
type Lease func(ctx context.Context, day time.Time, do func(context.Context) error) error

// MakeAdvisoryLease returns a Lease backed by pg_try_advisory_xact_lock on db.
// Once do has succeeded a failing commit is only logged: the lock is gone with the
// connection either way and the work must not be reported as failed
func MakeAdvisoryLease(db repokit.TxRunner) Lease {
	return func(ctx context.Context, day time.Time, do func(context.Context) error) error {
		done := false
		err := db.Tx(ctx, func(q repokit.Queryer) error {
			// the lease tx sits idle while items are dispatched
			if _, err := q.Exec(ctx, "SET LOCAL idle_in_transaction_session_timeout = 0"); err != nil {
				return perr.FromPostgres(err, "napr: prepare day lease")
			}
			var got bool
			if err := q.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1, $2)`, leaseClass, LeaseKey(day)).Scan(&got); err != nil {
				return perr.FromPostgres(err, "napr: take day lease")
			}
			if !got {
				return ErrLeaseHeld
			}
			if err := do(ctx); err != nil {
				return err
			}
			done = true
			return nil
		})
		if err != nil && done {
			logger.C(ctx).Warn().Err(err).Int32("lease_key", LeaseKey(day)).Msg("napr: day lease release failed after the run")
			return nil
		}
		return err
	}
}
