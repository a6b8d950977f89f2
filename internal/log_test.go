package internal

import (
	"testing"

	"github.com/shopspring/decimal"
)

// verifyAggregates recomputes every aggregate from a full scan of the records
// and fails the test if the incrementally maintained state disagrees. This is
// the core consistency contract of the log and is checked after every single
// insertion in the tests below.
func verifyAggregates(t *testing.T, l *PurchaseLog) {
	t.Helper()

	for i := 1; i < len(l.Records); i++ {
		if l.Records[i].Date.Before(l.Records[i-1].Date) {
			t.Fatalf("records out of order at index %d: %s before %s",
				i, l.Records[i].Date.Format("2006-01-02"), l.Records[i-1].Date.Format("2006-01-02"))
		}
	}

	var due, paid decimal.Decimal
	var min, max *Purchase
	for i := range l.Records {
		p := l.Records[i]
		if p.Status == StatusPaid {
			paid = paid.Add(p.FinalAmount)
			continue
		}
		due = due.Add(p.FinalAmount)
		if min == nil || p.FinalAmount.LessThan(min.FinalAmount) {
			min = &l.Records[i]
		}
		if max == nil || p.FinalAmount.GreaterThan(max.FinalAmount) {
			max = &l.Records[i]
		}
	}

	if !l.TotalDue.Equal(due) {
		t.Fatalf("TotalDue = %s, full scan gives %s", l.TotalDue, due)
	}
	if !l.TotalPaid.Equal(paid) {
		t.Fatalf("TotalPaid = %s, full scan gives %s", l.TotalPaid, paid)
	}
	if (min == nil) != (l.MinPurchase == nil) {
		t.Fatalf("MinPurchase presence = %v, full scan gives %v", l.MinPurchase != nil, min != nil)
	}
	if min != nil && !l.MinPurchase.FinalAmount.Equal(min.FinalAmount) {
		t.Fatalf("MinPurchase = %s, full scan gives %s", l.MinPurchase.FinalAmount, min.FinalAmount)
	}
	if (max == nil) != (l.MaxPurchase == nil) {
		t.Fatalf("MaxPurchase presence = %v, full scan gives %v", l.MaxPurchase != nil, max != nil)
	}
	if max != nil && !l.MaxPurchase.FinalAmount.Equal(max.FinalAmount) {
		t.Fatalf("MaxPurchase = %s, full scan gives %s", l.MaxPurchase.FinalAmount, max.FinalAmount)
	}
}

func TestPurchaseLog_Empty(t *testing.T) {
	l := NewPurchaseLog()

	due, paid := l.QueryTotals()
	if !due.IsZero() || !paid.IsZero() {
		t.Errorf("QueryTotals() = (%s, %s), want (0, 0)", due, paid)
	}
	if l.MinPurchase != nil || l.MaxPurchase != nil {
		t.Errorf("expected no min/max purchase on an empty log")
	}
	if got := l.QueryPurchases(StatusDue); len(got) != 0 {
		t.Errorf("QueryPurchases(due) on empty log returned %d records", len(got))
	}
}

func TestPurchaseLog_InsertionOrderings(t *testing.T) {
	days := map[string][]string{
		"ascending":      {"2023-01-05", "2023-02-10", "2023-03-15", "2023-04-20"},
		"descending":     {"2023-04-20", "2023-03-15", "2023-02-10", "2023-01-05"},
		"interleaved":    {"2023-02-10", "2023-04-20", "2023-01-05", "2023-03-15"},
		"all same date":  {"2023-02-10", "2023-02-10", "2023-02-10"},
		"single element": {"2023-02-10"},
	}

	for name, order := range days {
		t.Run(name, func(t *testing.T) {
			l := NewPurchaseLog()
			for i, day := range order {
				status := StatusDue
				if i%2 == 1 {
					status = StatusPaid
				}
				l.AddPurchase(mustPurchase(t, day, "visa", "100", status))
				verifyAggregates(t, l)
			}
			if len(l.Records) != len(order) {
				t.Errorf("len(Records) = %d, want %d", len(l.Records), len(order))
			}
		})
	}
}

func TestPurchaseLog_InsertBeforeFirst(t *testing.T) {
	l := NewPurchaseLog()
	l.AddPurchase(mustPurchase(t, "2023-06-15", "visa", "100", StatusDue))
	l.AddPurchase(mustPurchase(t, "2023-01-01", "amex", "50", StatusDue))
	verifyAggregates(t, l)

	if !l.Records[0].Date.Equal(date("2023-01-01")) {
		t.Errorf("first record is %s, want 2023-01-01", l.Records[0].Date.Format("2006-01-02"))
	}
}

func TestPurchaseLog_DuplicateDateKeepsInsertionOrder(t *testing.T) {
	l := NewPurchaseLog()
	l.AddPurchase(mustPurchase(t, "2023-06-15", "amex", "100", StatusDue))
	l.AddPurchase(mustPurchase(t, "2023-06-15", "visa", "200", StatusDue))
	l.AddPurchase(mustPurchase(t, "2023-06-15", "discover", "300", StatusDue))
	verifyAggregates(t, l)

	wantCards := []string{"amex", "visa", "discover"}
	for i, card := range wantCards {
		if l.Records[i].Card != card {
			t.Errorf("Records[%d].Card = %s, want %s", i, l.Records[i].Card, card)
		}
	}
}

func TestPurchaseLog_Totals(t *testing.T) {
	l := NewPurchaseLog()
	l.AddPurchase(mustPurchase(t, "2023-06-15", "visa", "1000", StatusDue))  // 1012
	l.AddPurchase(mustPurchase(t, "2023-06-16", "amex", "500", StatusDue))   // 505
	l.AddPurchase(mustPurchase(t, "2023-06-17", "visa", "300", StatusPaid))  // 300
	l.AddPurchase(mustPurchase(t, "2023-06-18", "discover", "200", StatusPaid)) // 200
	verifyAggregates(t, l)

	due, paid := l.QueryTotals()
	if !due.Equal(dec("1517")) {
		t.Errorf("total due = %s, want 1517", due)
	}
	if !paid.Equal(dec("500")) {
		t.Errorf("total paid = %s, want 500", paid)
	}
}

func TestPurchaseLog_MinMax(t *testing.T) {
	l := NewPurchaseLog()

	l.AddPurchase(mustPurchase(t, "2023-06-15", "visa", "500", StatusDue))
	if !l.MinPurchase.Amount.Equal(dec("500")) || !l.MaxPurchase.Amount.Equal(dec("500")) {
		t.Fatalf("single due record should be both min and max")
	}

	l.AddPurchase(mustPurchase(t, "2023-06-16", "visa", "100", StatusDue))
	if !l.MinPurchase.Amount.Equal(dec("100")) {
		t.Errorf("MinPurchase amount = %s, want 100", l.MinPurchase.Amount)
	}

	l.AddPurchase(mustPurchase(t, "2023-06-17", "visa", "900", StatusDue))
	if !l.MaxPurchase.Amount.Equal(dec("900")) {
		t.Errorf("MaxPurchase amount = %s, want 900", l.MaxPurchase.Amount)
	}
	verifyAggregates(t, l)
}

func TestPurchaseLog_MinMaxIgnoresPayments(t *testing.T) {
	l := NewPurchaseLog()
	l.AddPurchase(mustPurchase(t, "2023-06-15", "visa", "10", StatusPaid))
	l.AddPurchase(mustPurchase(t, "2023-06-16", "visa", "9000", StatusPaid))

	if l.MinPurchase != nil || l.MaxPurchase != nil {
		t.Fatalf("payments must not set min/max")
	}

	l.AddPurchase(mustPurchase(t, "2023-06-17", "visa", "500", StatusDue))
	if l.MinPurchase == nil || !l.MinPurchase.Amount.Equal(dec("500")) {
		t.Errorf("first due record should become min")
	}
	verifyAggregates(t, l)
}

func TestPurchaseLog_MinMaxTieKeepsEarliest(t *testing.T) {
	l := NewPurchaseLog()
	first := mustPurchase(t, "2023-06-15", "visa", "500", StatusDue)
	second := mustPurchase(t, "2023-06-20", "visa", "500", StatusDue)
	l.AddPurchase(first)
	l.AddPurchase(second)

	if !l.MinPurchase.Date.Equal(first.Date) {
		t.Errorf("min tie should keep the earlier insert, got date %s", l.MinPurchase.Date.Format("2006-01-02"))
	}
	if !l.MaxPurchase.Date.Equal(first.Date) {
		t.Errorf("max tie should keep the earlier insert, got date %s", l.MaxPurchase.Date.Format("2006-01-02"))
	}
}

func TestPurchaseLog_QueryPurchases(t *testing.T) {
	l := NewPurchaseLog()
	l.AddPurchase(mustPurchase(t, "2023-06-17", "visa", "300", StatusPaid))
	l.AddPurchase(mustPurchase(t, "2023-06-15", "visa", "100", StatusDue))
	l.AddPurchase(mustPurchase(t, "2023-06-16", "amex", "200", StatusDue))
	l.AddPurchase(mustPurchase(t, "2023-06-18", "amex", "400", StatusPaid))

	due := l.QueryPurchases(StatusDue)
	paid := l.QueryPurchases(StatusPaid)

	if len(due) != 2 || len(paid) != 2 {
		t.Fatalf("got %d due and %d paid records, want 2 and 2", len(due), len(paid))
	}
	if len(due)+len(paid) != len(l.Records) {
		t.Errorf("due and paid are not complements of the log")
	}
	for _, p := range due {
		if p.Status != StatusDue {
			t.Errorf("due query returned a %s record", p.Status)
		}
	}
	for i := 1; i < len(paid); i++ {
		if paid[i].Date.Before(paid[i-1].Date) {
			t.Errorf("paid query results out of date order")
		}
	}
}

func TestPurchaseLog_QueryPurchasesInRange(t *testing.T) {
	l := NewPurchaseLog()
	l.AddPurchase(mustPurchase(t, "2023-01-10", "visa", "100", StatusDue))
	l.AddPurchase(mustPurchase(t, "2023-02-10", "visa", "200", StatusDue))
	l.AddPurchase(mustPurchase(t, "2023-03-10", "visa", "300", StatusDue))
	l.AddPurchase(mustPurchase(t, "2023-02-15", "visa", "999", StatusPaid))

	got := l.QueryPurchasesInRange(StatusDue, date("2023-02-01"), date("2023-03-10"))
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if !got[0].Amount.Equal(dec("200")) || !got[1].Amount.Equal(dec("300")) {
		t.Errorf("range query returned wrong records")
	}

	// Bounds are inclusive on both sides.
	got = l.QueryPurchasesInRange(StatusDue, date("2023-01-10"), date("2023-01-10"))
	if len(got) != 1 {
		t.Errorf("inclusive single-day range returned %d records, want 1", len(got))
	}
}

func TestPurchaseLog_QueriesAreIdempotent(t *testing.T) {
	l := NewPurchaseLog()
	l.AddPurchase(mustPurchase(t, "2023-06-15", "visa", "1000", StatusDue))
	l.AddPurchase(mustPurchase(t, "2023-06-16", "visa", "500", StatusPaid))

	due1, paid1 := l.QueryTotals()
	due2, paid2 := l.QueryTotals()
	if !due1.Equal(due2) || !paid1.Equal(paid2) {
		t.Errorf("QueryTotals changed between calls without insertion")
	}

	first := l.QueryPurchases(StatusDue)
	second := l.QueryPurchases(StatusDue)
	if len(first) != len(second) {
		t.Fatalf("QueryPurchases changed between calls without insertion")
	}
	for i := range first {
		if !first[i].FinalAmount.Equal(second[i].FinalAmount) {
			t.Errorf("QueryPurchases result differs at index %d", i)
		}
	}
}
