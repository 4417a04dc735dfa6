package parser

import (
	"fmt"
	"strings"

	"github.com/UnknownOlympus/charon/internal/metrics"
	"github.com/UnknownOlympus/charon/internal/models"
	"github.com/xuri/excelize/v2"
)

// Column headers exactly as they appear in the source workbook.
const (
	colFullName    = "Persona trabajadora"
	colJoinDate    = "Fecha antiguidad"
	colContract    = "Contrato"
	colNationalID  = "DNI"
	colBirthDate   = "Fecha nacimiento"
	colAddress     = "Dirección"
	colPhone       = "Teléfono"
	colEmail       = "Correo electrónico"
	colBankAccount = "Cuenta bancaria"
	colGender      = "Sexo"
)

type WorkbookParser struct {
	path    string
	sheet   string
	metrics *metrics.Metrics
}

type EmployeeParserIface interface {
	ParseEmployees() ([]models.EmployeeRecord, error)
}

// NewWorkbookParser creates a parser over the workbook at path. An empty
// sheet name selects the first sheet of the workbook.
func NewWorkbookParser(path, sheet string, metrics *metrics.Metrics) EmployeeParserIface {
	return &WorkbookParser{path: path, sheet: sheet, metrics: metrics}
}

// ParseEmployees loads the whole sheet into memory and returns the
// transformed records in source order.
func (wp *WorkbookParser) ParseEmployees() ([]models.EmployeeRecord, error) {
	book, err := excelize.OpenFile(wp.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer book.Close()

	sheet := wp.sheet
	if sheet == "" {
		sheet = book.GetSheetName(0)
	}

	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := headerIndex(rows[0])

	records := make([]models.EmployeeRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := cellGetter(header, row)

		record := models.EmployeeRecord{
			FullName:    cell(colFullName),
			BirthDate:   trimTimePart(cell(colBirthDate)),
			Gender:      normalizeGender(cell(colGender)),
			JoinDate:    trimTimePart(cell(colJoinDate)),
			Contract:    cell(colContract),
			NationalID:  cell(colNationalID),
			Address:     cell(colAddress),
			Phone:       cell(colPhone),
			Email:       cell(colEmail),
			BankAccount: cell(colBankAccount),
		}

		records = append(records, record)
		wp.metrics.RowsExtracted.Inc()
	}

	return records, nil
}

func headerIndex(headerRow []string) map[string]int {
	index := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	return index
}

// cellGetter returns a lookup over one row. A column the sheet does not
// have, like a row too short to reach it, yields the empty string.
func cellGetter(header map[string]int, row []string) func(string) string {
	return func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}

		return row[idx]
	}
}

// normalizeGender folds the free-text indicator into the two categories the
// HR schema stores: values starting with "f"/"F" after trimming become
// "Female", everything else, empty included, becomes "Male". The mapping is
// a compatibility contract with the data already loaded this way; do not
// widen it.
func normalizeGender(raw string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "f") {
		return "Female"
	}

	return "Male"
}

// trimTimePart truncates a date-like value at the first space. Dates stay
// opaque strings end to end; no parsing, no locale handling.
func trimTimePart(value string) string {
	head, _, _ := strings.Cut(value, " ")

	return head
}
