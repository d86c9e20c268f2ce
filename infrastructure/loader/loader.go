// Package loader reads revenue events from uploaded CSV and XLSX files.
package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/revenue-insights-api/internal/config"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

const maxWarnings = 20

type Loader struct {
	columns config.Loader
}

func New(columns config.Loader) *Loader {
	return &Loader{columns: columns}
}

// Load parses r according to format. Malformed rows are dropped and counted, only a
// missing header column or an unreadable file is an error.
func (l *Loader) Load(r io.Reader, format domain.FileFormat) (*domain.LoadResult, error) {
	switch format {
	case domain.FileFormatXLSX:
		return l.loadXLSX(r)
	case domain.FileFormatCSV, "":
		return l.loadCSV(r)
	default:
		return nil, errors.Errorf("unsupported file format %q", format)
	}
}

type columnIndex struct {
	customer   int
	timestamp  int
	amount     int
	activation int
}

func (l *Loader) indexHeader(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	names := l.columns.Columns()
	idx := columnIndex{activation: -1}

	var missing []string
	for _, required := range []struct {
		name string
		dst  *int
	}{
		{name: names[0], dst: &idx.customer},
		{name: names[1], dst: &idx.timestamp},
		{name: names[2], dst: &idx.amount},
	} {
		pos, ok := positions[required.name]
		if !ok {
			missing = append(missing, required.name)
			continue
		}
		*required.dst = pos
	}
	if len(missing) > 0 {
		return idx, errors.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	// activation column falls back to the touchpoint column
	for _, optional := range names[3:] {
		if pos, ok := positions[optional]; ok && optional != "" {
			idx.activation = pos
			break
		}
	}

	return idx, nil
}

// parseRecord converts one data row. line is 1-based and counts the header.
func (idx columnIndex) parseRecord(record []string, line int) (domain.Transaction, error) {
	field := func(pos int) string {
		if pos < 0 || pos >= len(record) {
			return ""
		}
		return record[pos]
	}

	tx := domain.Transaction{CustomerID: strings.TrimSpace(field(idx.customer))}
	if tx.CustomerID == "" {
		return tx, malformed(line, "empty customer id")
	}

	ts, err := ParseTimestamp(field(idx.timestamp))
	if err != nil {
		return tx, malformed(line, err.Error())
	}
	tx.Timestamp = ts

	amount, err := ParseAmount(field(idx.amount))
	if err != nil {
		return tx, malformed(line, err.Error())
	}
	if amount.IsNegative() {
		return tx, malformed(line, fmt.Sprintf("negative amount %s", amount))
	}
	tx.Amount = amount

	activatedAt, err := ParseActivation(field(idx.activation), ts)
	if err != nil {
		return tx, malformed(line, err.Error())
	}
	tx.ActivatedAt = activatedAt

	return tx, nil
}

func malformed(line int, details string) error {
	return errors.Wrapf(domain.ErrMalformedRow, "line %d: %s", line, details)
}

// addWarning keeps the first maxWarnings messages and a final count of the rest.
func addWarning(result *domain.LoadResult, err error) {
	result.Dropped++
	if len(result.Warnings) < maxWarnings {
		result.Warnings = append(result.Warnings, err.Error())
	}
}

func finish(result *domain.LoadResult) *domain.LoadResult {
	if hidden := result.Dropped - len(result.Warnings); hidden > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d more malformed rows", hidden))
	}
	return result
}
