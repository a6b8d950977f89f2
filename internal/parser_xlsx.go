package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads transactions from an Excel sheet with Date, Card, Amount and
// an optional Status column. The header row is located by name, so extra
// columns and preamble rows above the header are tolerated. Unlike a bank
// statement scrape, a ledger import must not drop rows silently, so any
// malformed cell below the header fails the whole import with its row number.
func ParseXLSX(path string) ([]RawTransaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	dateCol, cardCol, amountCol, statusCol := -1, -1, -1, -1
	dataStartRow := -1

	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "date":
				dateCol = j
				dataStartRow = i + 1
			case "card":
				cardCol = j
			case "amount":
				amountCol = j
			case "status":
				statusCol = j
			}
		}
		if dateCol >= 0 && cardCol >= 0 && amountCol >= 0 {
			break
		}
	}

	if dateCol < 0 || cardCol < 0 || amountCol < 0 {
		return nil, fmt.Errorf("could not find required columns (Date, Card, Amount)")
	}

	var transactions []RawTransaction
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]

		cell := func(col int) string {
			if col < 0 || col >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[col])
		}

		dateStr := cell(dateCol)
		cardStr := cell(cardCol)
		amountStr := cell(amountCol)

		// Skip empty rows
		if dateStr == "" && cardStr == "" && amountStr == "" {
			continue
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+1, dateStr, err)
		}

		amountStr = strings.ReplaceAll(amountStr, ",", ".")
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+1, amountStr, err)
		}

		status, err := parseStatus(cell(statusCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		transactions = append(transactions, RawTransaction{
			Date:   date,
			Card:   strings.ToLower(cardStr),
			Amount: amount,
			Status: status,
		})
	}

	return transactions, nil
}
