package cryptoledger

import "sort"

// Quote is the latest known price of one asset in a fiat currency.
type Quote struct {
	Symbol string
	Price  Money
	Date   Date // as-of date of the price
}

// MarketData holds the latest price per symbol. It is the price map the
// unrealized-gain and valuation paths consume; a missing symbol simply means
// "no price", never an error.
type MarketData struct {
	quotes map[string]Quote
}

// NewMarketData creates an empty price store.
func NewMarketData() *MarketData {
	return &MarketData{quotes: make(map[string]Quote)}
}

// Set records the latest price for a symbol, replacing any previous quote.
func (m *MarketData) Set(symbol string, price Money, asOf Date) {
	m.quotes[symbol] = Quote{Symbol: symbol, Price: price, Date: asOf}
}

// Price returns the stored price for a symbol.
func (m *MarketData) Price(symbol string) (Money, bool) {
	q, ok := m.quotes[symbol]
	return q.Price, ok
}

// PriceMap returns the symbol to price mapping in the shape the calculator
// consumes.
func (m *MarketData) PriceMap() map[string]Money {
	out := make(map[string]Money, len(m.quotes))
	for symbol, q := range m.quotes {
		out[symbol] = q.Price
	}
	return out
}

// Quotes returns all quotes sorted by symbol.
func (m *MarketData) Quotes() []Quote {
	out := make([]Quote, 0, len(m.quotes))
	for _, q := range m.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Len returns the number of stored quotes.
func (m *MarketData) Len() int { return len(m.quotes) }
