package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction is one row of an import file before fee computation. The
// platform turns each row into a Purchase through NewPurchase, so card and
// amount validation still applies.
type RawTransaction struct {
	Date   time.Time
	Card   string
	Amount decimal.Decimal
	Status Status
}

// Parser parses transaction files into raw rows.
type Parser interface {
	Parse(path string) ([]RawTransaction, error)
}

// ParserFunc is a function that implements Parser.
type ParserFunc func(path string) ([]RawTransaction, error)

func (f ParserFunc) Parse(path string) ([]RawTransaction, error) {
	return f(path)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// RegisterParser registers a parser with the given name
func RegisterParser(name string, p Parser) {
	parsers[name] = p
}

// GetParser returns the parser for the given source type
func GetParser(source string) (Parser, error) {
	p, ok := parsers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return p, nil
}

// AvailableSources returns a list of registered source types
func AvailableSources() []string {
	var sources []string
	for name := range parsers {
		sources = append(sources, name)
	}
	return sources
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// parseStatus maps an import-file status cell to a Status. An empty cell
// defaults to due, matching how transactions are recorded interactively.
func parseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(StatusDue):
		return StatusDue, nil
	case string(StatusPaid):
		return StatusPaid, nil
	default:
		return "", fmt.Errorf("invalid status %q (expected %s or %s)", s, StatusDue, StatusPaid)
	}
}

func init() {
	// Register built-in parsers
	RegisterParser("simple-json", ParserFunc(ParseSimpleJSON))
	RegisterParser("xlsx", ParserFunc(ParseXLSX))
}
