package cryptoledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// quoteRecord is the wire shape of one price line.
type quoteRecord struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Date     Date            `json:"date"`
}

// EncodeMarketData writes the price store as JSONL, one quote per line,
// sorted by symbol for stable diffs.
func EncodeMarketData(w io.Writer, m *MarketData) error {
	for _, q := range m.Quotes() {
		var o jsonObjectWriter
		o.Append("symbol", q.Symbol)
		o.Append("price", q.Price.Decimal())
		o.Append("currency", q.Price.Currency())
		o.Append("date", q.Date)
		data, err := o.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot encode quote %q: %w", q.Symbol, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write quote %q: %w", q.Symbol, err)
		}
	}
	return nil
}

// DecodeMarketData reads a JSONL stream of quotes.
func DecodeMarketData(r io.Reader) (*MarketData, error) {
	m := NewMarketData()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var rec quoteRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("cannot parse price line %q: %w", string(lineBytes), err)
		}
		m.Set(rec.Symbol, M(rec.Price, rec.Currency), rec.Date)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read prices: %w", err)
	}
	return m, nil
}
