package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/shopsearch/internal/db"
)

// classify wraps err with the operation, marking connectivity failures as db.ErrUnavailable.
func classify(op string, err error) error {
	if isUnavailable(err) {
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrUnavailable, err)}
	}
	return &db.Error{Op: op, Err: err}
}

// classifyAcquire maps an acquire timeout to db.ErrPoolExhausted unless the caller's own
// context ended first.
func classifyAcquire(parent context.Context, err error) error {
	if isUnavailable(err) {
		return classify(db.OpAcquire, err)
	}
	if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
		return &db.Error{Op: db.OpAcquire, Err: db.ErrPoolExhausted}
	}
	return &db.Error{Op: db.OpAcquire, Err: err}
}

func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08: connection exception; 57P0x: server shutting down; 53300: too many connections.
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "57P0") ||
			pgErr.Code == "53300"
	}
	// Not net.Error: context.DeadlineExceeded satisfies it too.
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
