package db

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/Irdis/rsqlcmd/internal/locale"
	"github.com/Irdis/rsqlcmd/internal/script"
)

// Executor runs a script's batches strictly in split order on a single
// connection and feeds every produced result set, in statement order, to
// the renderer. Each result set is drained to completion before the next
// one is requested, so output ordering always matches the script. The
// first driver error aborts the remaining batches.
type Executor struct {
	conn     *Connection
	renderer Renderer
}

func NewExecutor(conn *Connection, renderer Renderer) *Executor {
	return &Executor{
		conn:     conn,
		renderer: renderer,
	}
}

func (ex *Executor) Run(ctx context.Context, text string) error {
	executed := 0

	for batch := range script.Batches(text) {
		executed++
		slog.InfoContext(ctx, locale.L.Logs.ExecutingBatch,
			"connection", ex.conn.Name(), "batch", executed)

		rows, err := ex.conn.Query(ctx, batch)
		if err != nil {
			slog.ErrorContext(ctx, locale.L.Logs.BatchFailed,
				"connection", ex.conn.Name(), "batch", executed, "error", err)
			return err
		}

		err = ex.renderResults(ctx, rows)
		rows.Close()
		if err != nil {
			slog.ErrorContext(ctx, locale.L.Logs.BatchFailed,
				"connection", ex.conn.Name(), "batch", executed, "error", err)
			return err
		}
	}

	if executed == 0 {
		// Separator-only or blank script: nothing to do is not an error.
		slog.InfoContext(ctx, locale.L.Logs.NoBatches)
	}
	return nil
}

func (ex *Executor) renderResults(ctx context.Context, rows *sql.Rows) error {
	set := 0
	for {
		set++
		slog.DebugContext(ctx, locale.L.Logs.RenderingResult, "result_set", set)

		cur, err := newCursor(rows)
		if err != nil {
			return err
		}
		if err := ex.renderer.Render(cur); err != nil {
			return err
		}

		if !rows.NextResultSet() {
			break
		}
	}
	return rows.Err()
}
