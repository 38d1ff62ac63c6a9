// journal/journal.go
package journal

import "time"

// Account owns a set of trades. InitialBalance is fixed at creation.
// CurrentBalance is derived state (initial balance plus the sum of closed
// trades' P&L) and is only ever written by the reconciler.
type Account struct {
	ID             string
	Name           string
	Broker         string
	Currency       string
	InitialBalance float64
	CurrentBalance float64
	IsActive       bool
	CreatedAt      time.Time
}

// ImportLog records one CSV import batch: where the file came from, how many
// rows it carried and what happened to each of them.
type ImportLog struct {
	ID           string
	AccountID    string
	FileName     string
	BrokerFormat string
	Status       string // processing, completed, failed
	TotalRows    int
	ImportedRows int
	SkippedRows  int
	ErrorRows    int
	ErrorDetails string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

const (
	ImportProcessing = "processing"
	ImportCompleted  = "completed"
	ImportFailed     = "failed"
)
