package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"churn_backend/internal/feature/churn/domain/entity"
)

// readXLSX parses the header and all data rows from the first sheet of an
// XLSX workbook.
func readXLSX(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return rows[0], rows[1:], nil
}

// ReadCustomersXLSX parses unlabeled customer rows from an XLSX workbook for
// prediction.
func ReadCustomersXLSX(r io.Reader) ([]entity.Customer, error) {
	header, records, err := readXLSX(r)
	if err != nil {
		return nil, err
	}
	ci, err := indexHeader(header, false)
	if err != nil {
		return nil, err
	}

	rows := make([]entity.Customer, 0, len(records))
	for i, record := range records {
		c, err := ci.parseCustomer(record, i+1)
		if err != nil {
			return nil, err
		}
		rows = append(rows, c)
	}
	return rows, nil
}

// ReadTrainingXLSX parses a labeled training table from an XLSX workbook.
func ReadTrainingXLSX(r io.Reader) ([]entity.TrainingExample, error) {
	header, records, err := readXLSX(r)
	if err != nil {
		return nil, err
	}
	ci, err := indexHeader(header, true)
	if err != nil {
		return nil, err
	}

	examples := make([]entity.TrainingExample, 0, len(records))
	for i, record := range records {
		ex, err := ci.parseExample(record, i+1)
		if err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}
	return examples, nil
}
