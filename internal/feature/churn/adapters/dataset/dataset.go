// Package dataset reads customer feature rows from row-oriented tabular
// files (CSV and XLSX). Files must carry a header naming at least the seven
// feature columns; any extra columns are dropped.
package dataset

import (
	"fmt"
	"strconv"

	"churn_backend/internal/feature/churn/domain/entity"
)

const labelColumn = "Churn"

// featureColumns are the header names of the fixed feature schema.
var featureColumns = []string{
	"tenure",
	"SeniorCitizen",
	"Partner",
	"Dependents",
	"MultipleLines",
	"InternetService",
	"OnlineSecurity",
}

// columnIndex maps the required column names to their positions in a header.
type columnIndex map[string]int

// indexHeader locates the required columns in the header row.
// withLabel additionally requires the Churn column.
func indexHeader(header []string, withLabel bool) (columnIndex, error) {
	pos := make(columnIndex)
	for i, name := range header {
		pos[name] = i
	}

	required := featureColumns
	if withLabel {
		required = append(append([]string{}, featureColumns...), labelColumn)
	}
	for _, name := range required {
		if _, ok := pos[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return pos, nil
}

// cell returns the value of the named column in a record, or "" when the
// record is too short.
func (ci columnIndex) cell(record []string, name string) string {
	i := ci[name]
	if i >= len(record) {
		return ""
	}
	return record[i]
}

// parseCustomer builds one feature row from a record. rowNum is 1-based and
// used only for error messages.
func (ci columnIndex) parseCustomer(record []string, rowNum int) (entity.Customer, error) {
	tenure, err := strconv.Atoi(ci.cell(record, "tenure"))
	if err != nil {
		return entity.Customer{}, fmt.Errorf("row %d: invalid tenure %q", rowNum, ci.cell(record, "tenure"))
	}
	senior, err := strconv.Atoi(ci.cell(record, "SeniorCitizen"))
	if err != nil || (senior != 0 && senior != 1) {
		return entity.Customer{}, fmt.Errorf("row %d: invalid SeniorCitizen %q", rowNum, ci.cell(record, "SeniorCitizen"))
	}

	return entity.Customer{
		Tenure:          tenure,
		SeniorCitizen:   senior,
		Partner:         ci.cell(record, "Partner"),
		Dependents:      ci.cell(record, "Dependents"),
		MultipleLines:   ci.cell(record, "MultipleLines"),
		InternetService: ci.cell(record, "InternetService"),
		OnlineSecurity:  ci.cell(record, "OnlineSecurity"),
	}, nil
}

// parseExample builds one labeled training row from a record.
func (ci columnIndex) parseExample(record []string, rowNum int) (entity.TrainingExample, error) {
	c, err := ci.parseCustomer(record, rowNum)
	if err != nil {
		return entity.TrainingExample{}, err
	}
	label, err := entity.ParseChurnLabel(ci.cell(record, labelColumn))
	if err != nil {
		return entity.TrainingExample{}, fmt.Errorf("row %d: %w", rowNum, err)
	}
	return entity.TrainingExample{Customer: c, Label: label}, nil
}
