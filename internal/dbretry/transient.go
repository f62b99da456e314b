package dbretry

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUnreachable = errors.New("can't reach database server")
	ErrPoolTimeout = errors.New("timed out fetching a new connection from the connection pool")
)

// SQLSTATE codes retried as transient.
const (
	CodeTooManyConnections = "53300"
	CodeCannotConnectNow   = "57P03"
)

// IsTransient reports whether err is one of the failure signatures expected to
// clear by itself: unreachable server, pool acquisition timeout, or one of
// the two SQLSTATE codes above.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrUnreachable) || errors.Is(err, ErrPoolTimeout) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == CodeTooManyConnections || pgErr.Code == CodeCannotConnectNow
	}

	if pgconn.Timeout(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, ErrUnreachable.Error()) ||
		strings.Contains(msg, ErrPoolTimeout.Error()) ||
		strings.Contains(msg, "connection refused")
}
