package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Irdis/rsqlcmd/internal/locale"
)

type Connection struct {
	name string
	db   *sql.DB
	err  error
}

func (c *Connection) Name() string {
	return c.name
}

// Ping tests the connection, retrying up to maxAttempts with a growing
// backoff to ride out transient failures. Used by the check command only;
// batch execution never retries.
func (c *Connection) Ping(ctx context.Context, maxAttempts uint8) error {
	if c.err != nil {
		return c.err
	}

	var attempt uint8
	for attempt = 1; attempt <= maxAttempts; attempt++ {
		err := c.db.PingContext(ctx)
		if err == nil {
			return nil
		}
		slog.WarnContext(ctx, locale.L.Logs.ConnectionFailed,
			"connection", c.name,
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", err,
		)
		if attempt < maxAttempts {
			time.Sleep(time.Second * time.Duration(attempt*2))
		}
	}
	return fmt.Errorf("connection to %s timeout", c.name)
}

// Query executes one batch and hands back the raw rows; the caller owns
// draining every result set and closing them.
func (c *Connection) Query(ctx context.Context, batch string) (*sql.Rows, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rows, err := c.db.QueryContext(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("error running query: %w", err)
	}
	return rows, nil
}
