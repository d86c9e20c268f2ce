// Package domain holds the types shared by the loaders, the analyses and the API.
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single revenue event of a customer as read from the uploaded file.
type Transaction struct {
	CustomerID  string          `json:"customer_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Amount      decimal.Decimal `json:"amount"`
	ActivatedAt time.Time       `json:"activated_at,omitempty"`
}

// Timestamps outside [MinTimestamp, MaxTimestamp) cannot be bucketed.
var (
	MinTimestamp = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxTimestamp = time.Date(2200, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func TimestampInRange(ts time.Time) bool {
	return !ts.Before(MinTimestamp) && ts.Before(MaxTimestamp)
}

// Valid reports whether the transaction can take part in an aggregation.
func (t Transaction) Valid() bool {
	return strings.TrimSpace(t.CustomerID) != "" &&
		TimestampInRange(t.Timestamp) &&
		(t.ActivatedAt.IsZero() || TimestampInRange(t.ActivatedAt)) &&
		!t.Amount.IsNegative()
}

type FileFormat string

const (
	FileFormatCSV  FileFormat = "csv"
	FileFormatXLSX FileFormat = "xlsx"
)

// FileFormatFromName infers the format from a file name, defaulting to CSV.
func FileFormatFromName(name string) FileFormat {
	lower := strings.ToLower(strings.TrimSpace(name))
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return FileFormatXLSX
	}
	return FileFormatCSV
}

// LoadResult is what a loader hands over to the analysis service.
type LoadResult struct {
	Transactions []Transaction
	RowsRead     int
	Dropped      int
	Warnings     []string
}

// DatasetSummary describes the dataset currently loaded.
type DatasetSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RowsRead     int       `json:"rows_read"`
	Transactions int       `json:"transactions"`
	Dropped      int       `json:"dropped_rows"`
	Customers    int       `json:"customers"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	Warnings     []string  `json:"warnings,omitempty"`
	LoadedAt     time.Time `json:"loaded_at"`
}
