package cryptoledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxReport aggregates the realized gains of one tax year in one reporting
// currency. It is constructed fresh per request and not mutated afterwards;
// the total is derived.
type TaxReport struct {
	Year           int
	Currency       string
	ShortTermGains Money
	LongTermGains  Money
	Gains          []RealizedGain
	Shortfalls     []Shortfall
}

// TotalGains returns the sum of short-term and long-term gains.
func (r *TaxReport) TotalGains() Money { return r.ShortTermGains.Add(r.LongTermGains) }

// GenerateTaxReport runs the gain aggregation for the given year and shapes
// the result into a report labelled with the reporting currency. Export to
// file formats is left to the caller (see ExportTaxReportCSV).
func GenerateTaxReport(transactions []Transaction, year int, currency string) *TaxReport {
	summary := CalculateRealizedGains(transactions, year)
	return &TaxReport{
		Year:           year,
		Currency:       currency,
		ShortTermGains: M(summary.ShortTerm.Decimal(), currency),
		LongTermGains:  M(summary.LongTerm.Decimal(), currency),
		Gains:          summary.Gains,
		Shortfalls:     summary.Shortfalls,
	}
}

// TaxSummary carries summary statistics over the gains of a report.
type TaxSummary struct {
	Count              int
	Symbols            []string // sorted
	LargestGain        Money
	LargestLoss        Money
	AverageGain        Money
	AverageHoldingDays int
}

// Summary computes summary statistics for the report's gains. An empty
// report yields a zero summary.
func (r *TaxReport) Summary() TaxSummary {
	s := TaxSummary{Count: len(r.Gains)}
	if s.Count == 0 {
		return s
	}

	seen := make(map[string]bool)
	total := decimal.Zero
	largest := r.Gains[0].Gain
	smallest := r.Gains[0].Gain
	holdingDays := 0
	for _, g := range r.Gains {
		if !seen[g.Symbol] {
			seen[g.Symbol] = true
			s.Symbols = append(s.Symbols, g.Symbol)
		}
		total = total.Add(g.Gain.Decimal())
		if g.Gain.GreaterThan(largest) {
			largest = g.Gain
		}
		if g.Gain.LessThan(smallest) {
			smallest = g.Gain
		}
		holdingDays += g.HoldingDays
	}
	sort.Strings(s.Symbols)
	s.LargestGain = largest
	s.LargestLoss = smallest
	s.AverageGain = M(total.Div(decimal.NewFromInt(int64(s.Count))), r.Currency)
	s.AverageHoldingDays = holdingDays / s.Count
	return s
}
