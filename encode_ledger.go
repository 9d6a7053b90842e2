package cryptoledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// txRecord is the wire shape of one ledger line. Quantity and amounts are
// decimals, the currency is a separate field shared by price and fee.
type txRecord struct {
	Type     TxType          `json:"type"`
	Date     Date            `json:"date"`
	ID       string          `json:"id"`
	Wallet   string          `json:"wallet,omitempty"`
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
	Fee      decimal.Decimal `json:"fee,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

func (r txRecord) transaction() Transaction {
	return Transaction{
		ID:       r.ID,
		WalletID: r.Wallet,
		Type:     r.Type,
		Symbol:   r.Symbol,
		Quantity: Q(r.Quantity),
		Price:    M(r.Price, r.Currency),
		Fee:      M(r.Fee, r.Currency),
		Date:     r.Date,
		Notes:    r.Notes,
	}
}

// EncodeTransaction writes one transaction as a canonical JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	var o jsonObjectWriter
	o.Append("type", tx.Type)
	o.Append("date", tx.Date)
	o.Append("id", tx.ID)
	o.Optional("wallet", tx.WalletID)
	o.Append("symbol", tx.Symbol)
	o.Append("quantity", tx.Quantity)
	o.Append("price", tx.Price.Decimal())
	o.Append("currency", tx.Currency())
	if !tx.Fee.IsZero() {
		o.Append("fee", tx.Fee.Decimal())
	}
	o.Optional("notes", tx.Notes)

	data, err := o.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode transaction %q: %w", tx.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write transaction %q: %w", tx.ID, err)
	}
	return nil
}

// EncodeLedger writes the whole ledger in JSONL, one transaction per line.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a JSONL stream of transactions and returns a validated
// ledger. Empty lines are skipped; a malformed line is an error, with the
// offending line quoted.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var rec txRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("cannot parse ledger line %q: %w", string(lineBytes), err)
		}
		if err := ledger.Append(rec.transaction()); err != nil {
			return nil, fmt.Errorf("invalid ledger line %q: %w", string(lineBytes), err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read ledger: %w", err)
	}
	return ledger, nil
}
