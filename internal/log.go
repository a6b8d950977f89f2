package internal

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLog is an append-only ledger of purchases and payments for one
// account, kept sorted ascending by date. Four aggregates are maintained
// incrementally on every insert so the query paths never rescan the records.
//
// A log is owned by exactly one account. It does no locking of its own; a
// caller that shares a log across goroutines must serialize every call.
type PurchaseLog struct {
	Records   []Purchase      `json:"records"`
	TotalDue  decimal.Decimal `json:"total_due"`
	TotalPaid decimal.Decimal `json:"total_paid"`

	// Due records with the smallest and largest final amount seen so far,
	// nil until the first due record arrives. On equal amounts the earlier
	// insert wins.
	MinPurchase *Purchase `json:"min_purchase,omitempty"`
	MaxPurchase *Purchase `json:"max_purchase,omitempty"`
}

// NewPurchaseLog returns an empty log.
func NewPurchaseLog() *PurchaseLog {
	return &PurchaseLog{}
}

// AddPurchase inserts p at the position that keeps Records sorted by date.
// The index is found with an upper-bound binary search (first record dated
// after p), so records sharing a date stay in insertion order. The aggregate
// update is constant time; no path rescans the log.
func (l *PurchaseLog) AddPurchase(p Purchase) {
	idx := sort.Search(len(l.Records), func(i int) bool {
		return l.Records[i].Date.After(p.Date)
	})
	l.Records = append(l.Records, Purchase{})
	copy(l.Records[idx+1:], l.Records[idx:])
	l.Records[idx] = p

	if p.Status == StatusPaid {
		l.TotalPaid = l.TotalPaid.Add(p.FinalAmount)
		return
	}

	l.TotalDue = l.TotalDue.Add(p.FinalAmount)
	if l.MinPurchase == nil || p.FinalAmount.LessThan(l.MinPurchase.FinalAmount) {
		min := p
		l.MinPurchase = &min
	}
	if l.MaxPurchase == nil || p.FinalAmount.GreaterThan(l.MaxPurchase.FinalAmount) {
		max := p
		l.MaxPurchase = &max
	}
}

// QueryTotals returns the running sums of final amounts for due and paid
// records.
func (l *PurchaseLog) QueryTotals() (totalDue, totalPaid decimal.Decimal) {
	return l.TotalDue, l.TotalPaid
}

// QueryPurchases returns the records with the given status, in ascending date
// order. The result is a fresh slice; mutating it does not touch the log.
func (l *PurchaseLog) QueryPurchases(status Status) []Purchase {
	var out []Purchase
	for _, p := range l.Records {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// QueryPurchasesInRange returns the records with the given status dated within
// [from, to] inclusive, in ascending date order.
func (l *PurchaseLog) QueryPurchasesInRange(status Status, from, to time.Time) []Purchase {
	from = normalizeDate(from)
	to = normalizeDate(to)
	var out []Purchase
	for _, p := range l.Records {
		if p.Status != status {
			continue
		}
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out
}
