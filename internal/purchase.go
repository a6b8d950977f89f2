package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status marks a record as an outstanding purchase or a settling payment.
type Status string

const (
	StatusDue  Status = "due"
	StatusPaid Status = "paid"
)

// BillingCycle is the calendar month containing a purchase date, inclusive on
// both ends.
type BillingCycle struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (b BillingCycle) String() string {
	return fmt.Sprintf("%s, %s", b.Start.Format("2006-01-02"), b.End.Format("2006-01-02"))
}

// InvalidCardTypeError is returned when a purchase names a card that is not in
// the rate table.
type InvalidCardTypeError struct {
	Card      string
	Supported []string
}

func (e *InvalidCardTypeError) Error() string {
	return fmt.Sprintf("unsupported card type: %s (supported: %s)",
		e.Card, strings.Join(e.Supported, ", "))
}

// InvalidAmountError is returned when a purchase amount is zero or negative.
type InvalidAmountError struct {
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount must be positive, got %s", e.Amount)
}

// Purchase is one financial record: either an outstanding purchase (due) or a
// payment against the account (paid). Every derived field is computed once by
// NewPurchase and never changes afterwards; callers must treat the value as
// read-only.
type Purchase struct {
	Date   time.Time       `json:"date"`
	Card   string          `json:"card"`
	Amount decimal.Decimal `json:"amount"`
	Status Status          `json:"status"`

	// Derived at construction. Persisted as-is so that fee-table changes
	// between program runs never rewrite history.
	TransactionFee decimal.Decimal `json:"transaction_fee"`
	ConvenienceFee decimal.Decimal `json:"convenience_fee"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	BillingCycle   BillingCycle    `json:"billing_cycle"`
}

var oneHundred = decimal.NewFromInt(100)

// NewPurchase builds a record from raw transaction input. Due purchases carry a
// card-specific transaction fee plus the flat convenience fee; payments carry
// no fees at all. The rate table is passed in explicitly so tests and callers
// can substitute their own rates.
//
// Returns *InvalidCardTypeError if card is not in the table and
// *InvalidAmountError if amount is not strictly positive.
func NewPurchase(date time.Time, card string, amount decimal.Decimal, status Status, rates *RateTable) (Purchase, error) {
	cardRate, ok := rates.CardRate(card)
	if !ok {
		return Purchase{}, &InvalidCardTypeError{Card: card, Supported: rates.SupportedCards()}
	}
	if !amount.IsPositive() {
		return Purchase{}, &InvalidAmountError{Amount: amount}
	}

	p := Purchase{
		Date:   normalizeDate(date),
		Card:   card,
		Amount: amount,
		Status: status,
	}
	if status == StatusDue {
		p.TransactionFee = amount.Mul(cardRate).Div(oneHundred)
		p.ConvenienceFee = amount.Mul(rates.ConvenienceRate).Div(oneHundred)
	}
	p.FinalAmount = amount.Add(p.TransactionFee).Add(p.ConvenienceFee)
	p.BillingCycle = billingCycleFor(p.Date)
	return p, nil
}

// billingCycleFor returns the calendar month containing date. AddDate
// normalizes the month overflow, so December rolls into January of the next
// year and leap Februaries end on the 29th.
func billingCycleFor(date time.Time) BillingCycle {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return BillingCycle{Start: start, End: end}
}

// normalizeDate strips the time-of-day and timezone so dates compare cleanly.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (p Purchase) String() string {
	kind := "Purchase"
	if p.Status == StatusPaid {
		kind = "Payment"
	}
	return fmt.Sprintf("%s: amount %s on %s for card %s [cycle: %s]",
		kind, p.FinalAmount, p.Date.Format("2006-01-02"), p.Card, p.BillingCycle)
}
