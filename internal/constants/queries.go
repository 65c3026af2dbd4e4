package constants

const (
	GetStatusByApiKey = `
	SELECT id, label, status FROM api_keys WHERE key = $1
	`

	GetLedgerTotalsByReceiver = `
	SELECT receiver_id, SUM(amount) AS total
	FROM hope_ledger
	GROUP BY receiver_id
	`
)
