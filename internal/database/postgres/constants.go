package postgres

// Gardener queries
const (
	queryLoadGardeners = `SELECT user_id, data FROM gardeners`

	queryUpsertGardener = `
INSERT INTO gardeners (user_id, data, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_id) DO UPDATE
SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
)

// Error Messages
const (
	ErrMsgFailedToLoadGardeners  = "failed to load gardeners"
	ErrMsgFailedToDecodeGardener = "failed to decode gardener"
	ErrMsgFailedToEncodeGardener = "failed to encode gardener"
	ErrMsgFailedToSaveGardener   = "failed to save gardener"
	ErrMsgFailedToBeginTx        = "failed to begin transaction"
	ErrMsgFailedToCommitTx       = "failed to commit transaction"
)

// Log messages
const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
)
