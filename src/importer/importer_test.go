package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"date,description,amount",
		"2024-05-01,Whole Foods grocery,84.20",
		"2024-05-03,Monthly rent payment,1200",
		"2024-05-07,Wire transfer 8812,-50.25",
	}, "\n")

	transactions, err := ParseCSV(strings.NewReader(input), 7)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	for _, tx := range transactions {
		assert.Equal(t, int64(7), tx.UserID)
		assert.Equal(t, models.SourceCSVUpload, tx.Source)
	}

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), transactions[0].Date)
	assert.Equal(t, models.CategoryFood, transactions[0].Category)
	assert.InDelta(t, 84.20, transactions[0].Amount, 1e-9)

	assert.Equal(t, models.CategoryRent, transactions[1].Category)
	assert.Equal(t, models.CategoryOther, transactions[2].Category)
	assert.InDelta(t, -50.25, transactions[2].Amount, 1e-9)
}

func TestParseCSVColumnOrderAndCase(t *testing.T) {
	input := "Amount,Date,Description\n12.50,2024-01-15,Netflix\n"

	transactions, err := ParseCSV(strings.NewReader(input), 1)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.CategorySubscriptions, transactions[0].Category)
	assert.InDelta(t, 12.50, transactions[0].Amount, 1e-9)
}

func TestParseCSVMissingColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("date,amount\n2024-01-01,5\n"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")
}

func TestParseCSVBadRows(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("date,description,amount\nnot-a-date,Coffee,3.50\n"), 1)
	assert.ErrorContains(t, err, "invalid date")

	_, err = ParseCSV(strings.NewReader("date,description,amount\n2024-01-01,Coffee,oops\n"), 1)
	assert.ErrorContains(t, err, "invalid amount")

	_, err = ParseCSV(strings.NewReader("date,description,amount\n2024-01-01,,3.50\n"), 1)
	assert.ErrorContains(t, err, "empty description")
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""), 1)
	assert.Error(t, err)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	transactions, err := ParseCSV(strings.NewReader("date,description,amount\n"), 1)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}
