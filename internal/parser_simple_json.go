package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// SimpleJSONFormat is a minimal JSON format for importing transactions
// Example:
//
//	{
//	  "transactions": [
//	    {"date": "2023-12-15", "card": "visa", "amount": 1000, "status": "due"},
//	    {"date": "2023-12-20", "card": "visa", "amount": 500, "status": "paid"}
//	  ]
//	}
//
// Status may be omitted; it defaults to "due". This format is easy to convert
// to from any bank export or data source.
type SimpleJSONFormat struct {
	Transactions []SimpleJSONTransaction `json:"transactions"`
}

type SimpleJSONTransaction struct {
	Date   string      `json:"date"`   // YYYY-MM-DD format
	Card   string      `json:"card"`   // Card type (e.g. visa)
	Amount json.Number `json:"amount"` // Positive decimal amount
	Status string      `json:"status"` // "due" or "paid", defaults to "due"
}

// ParseSimpleJSON parses a JSON file in the simple JSON format
func ParseSimpleJSON(path string) ([]RawTransaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var jsonData SimpleJSONFormat
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var transactions []RawTransaction
	for _, tx := range jsonData.Transactions {
		date, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", tx.Date, err)
		}
		amount, err := decimal.NewFromString(tx.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("parsing amount %q: %w", tx.Amount, err)
		}
		status, err := parseStatus(tx.Status)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, RawTransaction{
			Date:   date,
			Card:   tx.Card,
			Amount: amount,
			Status: status,
		})
	}

	return transactions, nil
}
