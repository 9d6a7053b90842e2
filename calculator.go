package cryptoledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Term classifies a realized gain by holding period for tax purposes.
type Term string

const (
	// ShortTerm is a holding period of 365 days or less.
	ShortTerm Term = "short"
	// LongTerm is a holding period of more than 365 days.
	LongTerm Term = "long"
)

// longTermDays is the holding period threshold, exclusive: exactly 365 days
// is still short term.
const longTermDays = 365

// RealizedGain is recognized when a sell or transfer_out consumes part or
// all of one purchase lot. It is immutable once emitted.
type RealizedGain struct {
	Symbol      string
	BuyDate     Date
	SellDate    Date
	BuyPrice    Money // unit price of the consumed lot
	SellPrice   Money // unit price of the disposal
	Quantity    Quantity
	CostBasis   Money
	Proceeds    Money
	Gain        Money // Proceeds - CostBasis
	Term        Term
	HoldingDays int
	BuyTxID     string
	SellTxID    string
}

// Shortfall records a disposal that asked for more quantity than the ledger
// held. The engine consumes what is available and reports the remainder
// here; callers decide whether to surface it as a warning or a hard error.
type Shortfall struct {
	Symbol   string
	SellTxID string
	Date     Date
	Quantity Quantity // unsatisfied remainder
}

// ProcessResult is the output of one full matching-engine pass.
type ProcessResult struct {
	// Gains maps each symbol to its realized gains in realization order.
	Gains map[string][]RealizedGain
	// Inventory is the residual open-lot state after the pass, used for
	// unrealized-gain and valuation computations.
	Inventory *Inventory
	// Shortfalls lists the disposals that exceeded the held quantity.
	Shortfalls []Shortfall
}

// AllGains returns every realized gain, symbols in sorted order and gains in
// realization order within a symbol. The sequence is deterministic for a
// given transaction list.
func (r *ProcessResult) AllGains() []RealizedGain {
	symbols := make([]string, 0, len(r.Gains))
	for s := range r.Gains {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	var out []RealizedGain
	for _, s := range symbols {
		out = append(out, r.Gains[s]...)
	}
	return out
}

// ProcessTransactions runs one FIFO matching pass over the transactions.
//
// The input is sorted ascending by date (stable, so same-day transactions
// keep their given order) without mutating the caller's slice. Buys and
// transfers in append lots; sells and transfers out consume lots oldest
// first and realize gains; exchange transactions have no gain effect (a
// documented limitation carried over from the original system).
//
// The pass owns its Inventory exclusively and rebuilds it from scratch, so
// calling twice with the same input yields identical results.
func ProcessTransactions(transactions []Transaction) *ProcessResult {
	txs := make([]Transaction, len(transactions))
	copy(txs, transactions)
	sortTransactions(txs)

	result := &ProcessResult{
		Gains:     make(map[string][]RealizedGain),
		Inventory: NewInventory(),
	}

	for _, tx := range txs {
		switch {
		case tx.Type.Acquires():
			result.Inventory.Append(tx.Symbol, Lot{
				Date:     tx.Date,
				Quantity: tx.Quantity,
				Price:    tx.Price,
				TxID:     tx.ID,
			})

		case tx.Type.Disposes():
			portions, short := result.Inventory.Consume(tx.Symbol, tx.Quantity)
			for _, p := range portions {
				holding := tx.Date.DaysSince(p.Date)
				term := ShortTerm
				if holding > longTermDays {
					term = LongTerm
				}
				costBasis := p.Price.Mul(p.Quantity)
				proceeds := tx.Price.Mul(p.Quantity)
				result.Gains[tx.Symbol] = append(result.Gains[tx.Symbol], RealizedGain{
					Symbol:      tx.Symbol,
					BuyDate:     p.Date,
					SellDate:    tx.Date,
					BuyPrice:    p.Price,
					SellPrice:   tx.Price,
					Quantity:    p.Quantity,
					CostBasis:   costBasis,
					Proceeds:    proceeds,
					Gain:        proceeds.Sub(costBasis),
					Term:        term,
					HoldingDays: holding,
					BuyTxID:     p.TxID,
					SellTxID:    tx.ID,
				})
			}
			if short.IsPositive() {
				result.Shortfalls = append(result.Shortfalls, Shortfall{
					Symbol:   tx.Symbol,
					SellTxID: tx.ID,
					Date:     tx.Date,
					Quantity: short,
				})
			}

		case tx.Type == TxExchange:
			// No gain or loss is recorded for exchanges in this version.
		}
	}
	return result
}

// RealizedSummary aggregates realized gains, split by term.
type RealizedSummary struct {
	ShortTerm  Money
	LongTerm   Money
	Gains      []RealizedGain
	Shortfalls []Shortfall
}

// Total returns the sum of short-term and long-term gains.
func (s RealizedSummary) Total() Money { return s.ShortTerm.Add(s.LongTerm) }

// CalculateRealizedGains runs the matching engine and aggregates realized
// gains. A non-zero year keeps only gains whose sell date falls in that
// year; year 0 keeps all. An empty transaction set yields zero totals and an
// empty gain list, never an error.
func CalculateRealizedGains(transactions []Transaction, year int) RealizedSummary {
	result := ProcessTransactions(transactions)

	summary := RealizedSummary{
		ShortTerm:  M(decimal.Zero, ""),
		LongTerm:   M(decimal.Zero, ""),
		Shortfalls: result.Shortfalls,
	}
	for _, g := range result.AllGains() {
		if year != 0 && g.SellDate.Year() != year {
			continue
		}
		if g.Term == ShortTerm {
			summary.ShortTerm = summary.ShortTerm.Add(g.Gain)
		} else {
			summary.LongTerm = summary.LongTerm.Add(g.Gain)
		}
		summary.Gains = append(summary.Gains, g)
	}
	return summary
}

// UnrealizedPosition is the paper gain standing on one symbol's open lots.
type UnrealizedPosition struct {
	Symbol       string
	Quantity     Quantity
	AverageCost  Money // quantity-weighted mean of the open lot prices
	CurrentPrice Money
	MarketValue  Money
	CostBasis    Money
	Gain         Money // MarketValue - CostBasis
}

// UnrealizedSummary aggregates unrealized gains over the symbols that have a
// current price.
type UnrealizedSummary struct {
	Positions []UnrealizedPosition // sorted by symbol
	Total     Money                // sum over included symbols only
}

// CalculateUnrealizedGains runs the matching engine to obtain the residual
// inventory and values it against the given price map. Symbols with no
// remaining quantity, and symbols absent from the price map, are omitted
// from the result; a missing price is never an error.
func CalculateUnrealizedGains(transactions []Transaction, prices map[string]Money) UnrealizedSummary {
	result := ProcessTransactions(transactions)

	summary := UnrealizedSummary{Total: M(decimal.Zero, "")}
	for _, symbol := range result.Inventory.Symbols() {
		price, ok := prices[symbol]
		if !ok {
			continue
		}
		quantity, avgCost := result.Inventory.Snapshot(symbol)
		marketValue := price.Mul(quantity)
		costBasis := avgCost.Mul(quantity)
		gain := marketValue.Sub(costBasis)
		summary.Positions = append(summary.Positions, UnrealizedPosition{
			Symbol:       symbol,
			Quantity:     quantity,
			AverageCost:  avgCost,
			CurrentPrice: price,
			MarketValue:  marketValue,
			CostBasis:    costBasis,
			Gain:         gain,
		})
		summary.Total = summary.Total.Add(gain)
	}
	return summary
}
