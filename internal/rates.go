package internal

import (
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ratesFile is the on-disk YAML shape of a rate table. Rates are percentages,
// e.g. 0.8 means a 0.8% fee.
//
// Example:
//
//	cards:
//	  amex: 0.8
//	  visa: 1.0
//	  discover: 0.5
//	convenience_fee: 0.2
type ratesFile struct {
	Cards          map[string]float64 `yaml:"cards"`
	ConvenienceFee float64            `yaml:"convenience_fee"`
}

// RateTable holds the per-card transaction-fee percentages and the flat
// convenience-fee percentage applied to due purchases. Build one with
// DefaultRates or LoadRates rather than by hand.
type RateTable struct {
	ConvenienceRate decimal.Decimal

	cardRates map[string]decimal.Decimal
}

// DefaultRates returns the built-in fee schedule.
func DefaultRates() *RateTable {
	return &RateTable{
		ConvenienceRate: decimal.NewFromFloat(0.2),
		cardRates: map[string]decimal.Decimal{
			"amex":     decimal.NewFromFloat(0.8),
			"visa":     decimal.NewFromFloat(1.0),
			"discover": decimal.NewFromFloat(0.5),
		},
	}
}

// NewRateTable builds a table from explicit percentages. Mainly useful in
// tests that need synthetic rates.
func NewRateTable(cards map[string]decimal.Decimal, convenience decimal.Decimal) *RateTable {
	copied := make(map[string]decimal.Decimal, len(cards))
	for card, rate := range cards {
		copied[card] = rate
	}
	return &RateTable{ConvenienceRate: convenience, cardRates: copied}
}

// LoadRates reads a rate table from a YAML file and validates it.
func LoadRates(path string) (*RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rates file: %w", err)
	}

	var f ratesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rates file: %w", err)
	}

	if len(f.Cards) == 0 {
		return nil, fmt.Errorf("rates file %s defines no cards", path)
	}
	if f.ConvenienceFee < 0 {
		return nil, fmt.Errorf("convenience fee must not be negative, got %v", f.ConvenienceFee)
	}

	t := &RateTable{
		ConvenienceRate: decimal.NewFromFloat(f.ConvenienceFee),
		cardRates:       make(map[string]decimal.Decimal, len(f.Cards)),
	}
	for card, rate := range f.Cards {
		if rate < 0 {
			return nil, fmt.Errorf("rate for card %q must not be negative, got %v", card, rate)
		}
		t.cardRates[card] = decimal.NewFromFloat(rate)
	}
	return t, nil
}

// Save writes the table back out as YAML.
func (t *RateTable) Save(path string) error {
	f := ratesFile{
		Cards:          make(map[string]float64, len(t.cardRates)),
		ConvenienceFee: t.ConvenienceRate.InexactFloat64(),
	}
	for card, rate := range t.cardRates {
		f.Cards[card] = rate.InexactFloat64()
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling rates: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing rates file: %w", err)
	}
	return nil
}

// CardRate returns the transaction-fee percentage for card.
func (t *RateTable) CardRate(card string) (decimal.Decimal, bool) {
	rate, ok := t.cardRates[card]
	return rate, ok
}

// SupportedCards returns the known card names, sorted for stable error
// messages and prompts.
func (t *RateTable) SupportedCards() []string {
	cards := make([]string, 0, len(t.cardRates))
	for card := range t.cardRates {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	return cards
}
