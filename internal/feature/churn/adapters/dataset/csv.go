package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"churn_backend/internal/feature/churn/domain/entity"
)

// readCSV parses the header and all data records from r.
func readCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are reported per cell instead

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv records: %w", err)
	}
	return header, records, nil
}

// ReadTrainingCSV parses a labeled training table from CSV.
func ReadTrainingCSV(r io.Reader) ([]entity.TrainingExample, error) {
	header, records, err := readCSV(r)
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

// ReadCustomersCSV parses unlabeled customer rows from CSV for prediction.
func ReadCustomersCSV(r io.Reader) ([]entity.Customer, error) {
	header, records, err := readCSV(r)
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
