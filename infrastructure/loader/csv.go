package loader

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

func (l *Loader) loadCSV(r io.Reader) (*domain.LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty file, a header row is required")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading csv header")
	}

	idx, err := l.indexHeader(header)
	if err != nil {
		return nil, err
	}

	result := &domain.LoadResult{Transactions: []domain.Transaction{}}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.RowsRead++
				addWarning(result, malformed(parseErr.Line, parseErr.Err.Error()))
				continue
			}
			return nil, errors.Wrap(err, "reading csv")
		}

		if isBlank(record) {
			continue
		}
		result.RowsRead++

		tx, err := idx.parseRecord(record, line)
		if err != nil {
			addWarning(result, err)
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	return finish(result), nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if field != "" {
			return false
		}
	}
	return true
}
