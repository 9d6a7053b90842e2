package cryptoledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PortfolioItem is the holding of one asset: the residual quantity, and its
// current price and value when the price map covers the symbol.
type PortfolioItem struct {
	Symbol   string
	Quantity Quantity
	Price    Money
	Value    Money
	Priced   bool // false when no current price was available
}

// Holdings returns the positive residual quantity per symbol after
// processing all transactions through the matching engine.
func Holdings(transactions []Transaction) map[string]Quantity {
	result := ProcessTransactions(transactions)
	out := make(map[string]Quantity)
	for _, symbol := range result.Inventory.Symbols() {
		quantity, _ := result.Inventory.Snapshot(symbol)
		out[symbol] = quantity
	}
	return out
}

// PortfolioItems returns one item per held symbol, sorted by symbol,
// priced where the price map allows. Unpriced symbols are still listed.
func PortfolioItems(transactions []Transaction, prices map[string]Money) []PortfolioItem {
	result := ProcessTransactions(transactions)
	var items []PortfolioItem
	for _, symbol := range result.Inventory.Symbols() {
		quantity, _ := result.Inventory.Snapshot(symbol)
		item := PortfolioItem{Symbol: symbol, Quantity: quantity}
		if price, ok := prices[symbol]; ok {
			item.Price = price
			item.Value = price.Mul(quantity)
			item.Priced = true
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Symbol < items[j].Symbol })
	return items
}

// PortfolioValue is the valued portfolio in one reporting currency.
type PortfolioValue struct {
	Currency string
	Total    Money // sum over priced items only
	Items    []PortfolioItem
}

// Valuation values the whole portfolio against the price map. Unpriced
// holdings contribute nothing to the total.
func Valuation(transactions []Transaction, prices map[string]Money, currency string) PortfolioValue {
	items := PortfolioItems(transactions, prices)
	total := decimal.Zero
	for _, item := range items {
		if item.Priced {
			total = total.Add(item.Value.Decimal())
		}
	}
	return PortfolioValue{
		Currency: currency,
		Total:    M(total, currency),
		Items:    items,
	}
}

// DistributionSlice is one asset's share of the total portfolio value.
type DistributionSlice struct {
	Symbol string
	Value  Money
	Weight Percent
}

// Distribution returns the priced items' share of the total value, sorted
// by value descending. A zero total yields an empty distribution.
func (v PortfolioValue) Distribution() []DistributionSlice {
	if !v.Total.IsPositive() {
		return nil
	}
	var out []DistributionSlice
	for _, item := range v.Items {
		if !item.Priced {
			continue
		}
		weight := item.Value.Decimal().Div(v.Total.Decimal()).Mul(decimal.NewFromInt(100))
		out = append(out, DistributionSlice{
			Symbol: item.Symbol,
			Value:  item.Value,
			Weight: Percent(weight.InexactFloat64()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}
