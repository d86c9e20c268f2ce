package loader

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// serials below this are Excel day numbers rather than unix epochs
const maxExcelSerial = 1e6

func (l *Loader) loadXLSX(r io.Reader) (*domain.LoadResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %q", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sheet, a header row is required")
	}

	idx, err := l.indexHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &domain.LoadResult{Transactions: []domain.Transaction{}}
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		result.RowsRead++

		if idx.timestamp < len(row) {
			row[idx.timestamp] = excelSerialToTimestamp(row[idx.timestamp])
		}

		tx, err := idx.parseRecord(row, i+2)
		if err != nil {
			addWarning(result, err)
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	return finish(result), nil
}

// excelSerialToTimestamp rewrites a date cell stored as a serial number into RFC3339.
func excelSerialToTimestamp(value string) string {
	trimmed := strings.TrimSpace(value)
	serial, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || serial <= 0 || serial >= maxExcelSerial {
		return value
	}

	ts, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return ts.UTC().Format(time.RFC3339)
}
