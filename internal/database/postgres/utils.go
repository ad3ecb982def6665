package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// SafeRollback rolls back tx. It is deferred right after Begin, so a rollback
// of an already committed transaction is expected and not logged.
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return
	}
	logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
}
