package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fintrack-server/src/categorizer"
	"fintrack-server/src/models"
)

const dateFormat = "2006-01-02"

// Required header columns, matched case-insensitively in any order.
var requiredColumns = []string{"date", "description", "amount"}

// ParseCSV reads a bank-statement CSV with header columns date, description
// and amount, categorizes each row by its description and returns transactions
// ready for bulk insertion with source=csv_upload. Any malformed row aborts
// the whole import.
func ParseCSV(r io.Reader, userID int64) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	cols, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	for i, record := range records[1:] {
		tx, err := parseRow(record, cols, userID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int, userID int64) (models.Transaction, error) {
	get := func(name string) string {
		idx := cols[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := time.Parse(dateFormat, get("date"))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid date %q: %w", get("date"), err)
	}

	description := get("description")
	if description == "" {
		return models.Transaction{}, fmt.Errorf("empty description")
	}

	amount, err := strconv.ParseFloat(get("amount"), 64)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", get("amount"), err)
	}

	return models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Category:    categorizer.Categorize(description),
		Source:      models.SourceCSVUpload,
	}, nil
}
