package errors

// Postgres-specific helpers for mapping pgx errors to project ErrorCode

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we care about
const (
	pgErrUndefinedTable    = "42P01"
	pgErrUndefinedColumn   = "42703"
	pgErrInsufficientPriv  = "42501"
	pgErrQueryCanceled     = "57014"
	pgErrAdminShutdown     = "57P01"
	pgErrCannotConnectNow  = "57P03"
	pgErrTooManyConns      = "53300"
	pgErrConnectionFailure = "08006"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError.
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsConnectionUnavailable reports whether the server refused or dropped us
func IsConnectionUnavailable(err error) bool {
	var ce *pgconn.ConnectError
	if stderrs.As(err, &ce) {
		return true
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return false
	}
	switch pgErr.Code {
	case pgErrCannotConnectNow, pgErrAdminShutdown, pgErrTooManyConns, pgErrConnectionFailure:
		return true
	}
	return false
}

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a pg error; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	if IsConnectionUnavailable(err) {
		return ErrorCodeUnavailable, true
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgErrQueryCanceled:
		return ErrorCodeCanceled, true
	case pgErrUndefinedTable, pgErrUndefinedColumn, pgErrInsufficientPriv:
		// schema or grants drifted under us; the store cannot answer the query
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrorCodeCanceled, msg)
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}
