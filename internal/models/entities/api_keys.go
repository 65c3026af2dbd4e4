package entities

type ApiKey struct {
	ID     string `db:"id"`
	Label  string `db:"label"`
	Status bool   `db:"status"`
}

// LedgerTotal is the sqlx row shape for the reconciliation report query.
type LedgerTotal struct {
	ReceiverID string `db:"receiver_id"`
	Total      int64  `db:"total"`
}
