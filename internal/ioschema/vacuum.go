package ioschema

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// vacuumAnalyze updates query planner statistics of the filled file and
// rebuilds it without free pages. VACUUM cannot run inside a transaction.
func vacuumAnalyze(ctx context.Context, db *sql.DB) error {
	slog.Info("Running ANALYZE and VACUUM on output file")
	timeStart := time.Now()

	for _, q := range []string{"ANALYZE", "VACUUM"} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			slog.Error("Failed to compact output file", "query", q, "error", err)
			return VacuumError(err)
		}
	}

	slog.Info("ANALYZE and VACUUM completed",
		"duration", time.Since(timeStart).String())
	return nil
}
