package internal

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

// PrintHistory renders purchases as a table with a bold total of the final
// amounts in the footer.
func PrintHistory(w io.Writer, purchases []Purchase, cur Currency) {
	if len(purchases) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Date", "Card", "Amount", "Fees", "Final Amount", "Billing Cycle"})

	var total decimal.Decimal
	for _, p := range purchases {
		fees := p.TransactionFee.Add(p.ConvenienceFee)
		total = total.Add(p.FinalAmount)
		t.AppendRow(table.Row{
			p.Date.Format("2006-01-02"),
			p.Card,
			cur.Format(p.Amount),
			cur.Format(fees),
			cur.Format(p.FinalAmount),
			p.BillingCycle.String(),
		})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", text.Bold.Sprint("Total"), text.Bold.Sprint(cur.Format(total)), ""})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	t.Render()
}

// PrintTotals renders the running totals plus the remaining balance due.
func PrintTotals(w io.Writer, totalDue, totalPaid decimal.Decimal, cur Currency) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendRows([]table.Row{
		{"Total due till date", cur.Format(totalDue)},
		{"Total paid till date", cur.Format(totalPaid)},
	})
	t.AppendSeparator()
	t.AppendRow(table.Row{text.Bold.Sprint("Remaining amount due"), text.Bold.Sprint(cur.Format(totalDue.Sub(totalPaid)))})

	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	t.Render()
}

// PrintMinMax renders the extreme due purchases, or a notice when the log has
// no due records yet.
func PrintMinMax(w io.Writer, min, max *Purchase, cur Currency) {
	if min == nil || max == nil {
		fmt.Fprintln(w, "No purchases recorded yet.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"", "Date", "Card", "Final Amount", "Billing Cycle"})
	t.AppendRow(table.Row{"Minimum", min.Date.Format("2006-01-02"), min.Card, cur.Format(min.FinalAmount), min.BillingCycle.String()})
	t.AppendRow(table.Row{"Maximum", max.Date.Format("2006-01-02"), max.Card, cur.Format(max.FinalAmount), max.BillingCycle.String()})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})

	t.Render()
}
