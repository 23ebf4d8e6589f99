package observability

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Outcomes recorded in the status label of db_query_duration_seconds.
const (
	dbOK       = "ok"
	dbNotFound = "not_found"
	dbError    = "error"
)

// ObserveDB times one logical gateway operation. Missing rows are recorded as
// not_found and do not count towards db_errors_total.
func (p *Prom) ObserveDB(op string, fn func() error) error {
	start := time.Now()
	err := fn()

	outcome := dbOutcome(err)
	if outcome == dbError {
		p.DbErrorsTotal.WithLabelValues(op, classifyDBErr(err)).Inc()
	}
	p.DbQueryDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
	return err
}

func dbOutcome(err error) string {
	switch {
	case err == nil:
		return dbOK
	case errors.Is(err, event.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		return dbNotFound
	default:
		return dbError
	}
}

// SQLSTATE codes the copy path can hit while inserting into a tenant database.
var pgErrClasses = map[string]string{
	"23505": "unique_violation",
	"23503": "foreign_key_violation",
	"23502": "not_null_violation",
	"23514": "check_violation",
	"22001": "value_too_long",
	"40001": "serialization_failure",
	"40P01": "deadlock",
	"55P03": "lock_not_available",
	"57014": "query_canceled",
	"42P01": "undefined_table",
}

func classifyDBErr(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if class, ok := pgErrClasses[pgErr.Code]; ok {
			return class
		}
		// class 08 is connection exceptions, 53 is out of resources
		switch {
		case strings.HasPrefix(pgErr.Code, "08"):
			return "connection"
		case strings.HasPrefix(pgErr.Code, "53"):
			return "insufficient_resources"
		}
		return "pg_" + pgErr.Code
	}

	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return "connection"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return "timeout"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "unknown"
	}
}
