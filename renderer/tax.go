// Package renderer shapes reports into markdown for terminal display.
package renderer

import (
	"fmt"
	"strings"

	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
)

// TaxReportMarkdown renders a tax report: summary totals, the realized-gain
// detail table, and any inventory shortfall warnings.
func TaxReportMarkdown(r *cryptoledger.TaxReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tax Report %d (%s)\n\n", r.Year, r.Currency)

	fmt.Fprintln(&b, "| | Gains |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Short term | %s |\n", r.ShortTermGains.SignedString())
	fmt.Fprintf(&b, "| Long term | %s |\n", r.LongTermGains.SignedString())
	fmt.Fprintf(&b, "| **Total** | **%s** |\n\n", r.TotalGains().SignedString())

	if len(r.Gains) > 0 {
		fmt.Fprint(&b, "## Realized Gains\n\n")
		fmt.Fprintln(&b, "| Symbol | Quantity | Bought | Sold | Cost Basis | Proceeds | Gain | Term |")
		fmt.Fprintln(&b, "|:---|---:|:---|:---|---:|---:|---:|:---|")
		for _, g := range r.Gains {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				g.Symbol, g.Quantity, g.BuyDate, g.SellDate,
				g.CostBasis, g.Proceeds, g.Gain.SignedString(), g.Term)
		}
		fmt.Fprintln(&b)
	}

	appendShortfalls(&b, r.Shortfalls)
	return b.String()
}

// appendShortfalls renders inventory shortfalls as warnings; they signal
// sells recorded against more quantity than the ledger held.
func appendShortfalls(b *strings.Builder, shortfalls []cryptoledger.Shortfall) {
	if len(shortfalls) == 0 {
		return
	}
	fmt.Fprint(b, "## Warnings\n\n")
	for _, s := range shortfalls {
		fmt.Fprintf(b, "- %s: sold %s more %s than held (transaction %s)\n",
			s.Date, s.Quantity, s.Symbol, s.SellTxID)
	}
	fmt.Fprintln(b)
}

// UnrealizedMarkdown renders the unrealized-gain standing per symbol.
func UnrealizedMarkdown(s cryptoledger.UnrealizedSummary) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Unrealized Gains\n\n")
	if len(s.Positions) == 0 {
		fmt.Fprint(&b, "No priced holdings.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Avg Cost | Price | Market Value | Cost Basis | Gain |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, p := range s.Positions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			p.Symbol, p.Quantity, p.AverageCost, p.CurrentPrice,
			p.MarketValue, p.CostBasis, p.Gain.SignedString())
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | **%s** |\n", s.Total.SignedString())
	return b.String()
}
