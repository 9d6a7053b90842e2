package cryptoledger

import (
	"fmt"
	"sort"
	"strings"
)

// TxType is a typed string identifying the kind of a transaction.
type TxType string

// Transaction types recorded in the ledger.
const (
	TxBuy         TxType = "buy"
	TxSell        TxType = "sell"
	TxExchange    TxType = "exchange"
	TxTransferIn  TxType = "transfer_in"
	TxTransferOut TxType = "transfer_out"
)

// ParseTxType parses a string into a TxType. It accepts the canonical names
// and the dashed spellings used on the command line.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "-", "_"))) {
	case "buy":
		return TxBuy, nil
	case "sell":
		return TxSell, nil
	case "exchange":
		return TxExchange, nil
	case "transfer_in":
		return TxTransferIn, nil
	case "transfer_out":
		return TxTransferOut, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Acquires reports whether the transaction type adds to inventory.
func (t TxType) Acquires() bool { return t == TxBuy || t == TxTransferIn }

// Disposes reports whether the transaction type removes from inventory.
func (t TxType) Disposes() bool { return t == TxSell || t == TxTransferOut }

// Transaction is one immutable entry of the transaction log.
//
// Quantity is the asset amount, Price the per-unit price in the fiat
// currency carried by Price and Fee. The ID is opaque and assigned by the
// ledger on append.
type Transaction struct {
	ID       string
	WalletID string
	Type     TxType
	Symbol   string
	Quantity Quantity
	Price    Money
	Fee      Money
	Date     Date
	Notes    string
}

// Currency returns the fiat currency the transaction was priced in.
func (t Transaction) Currency() string { return t.Price.Currency() }

// TotalCost returns quantity times unit price.
func (t Transaction) TotalCost() Money { return t.Price.Mul(t.Quantity) }

// TotalWithFee returns the total cost including the fee.
func (t Transaction) TotalWithFee() Money { return t.TotalCost().Add(t.Fee) }

// Equal reports whether two transactions carry the same data.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.WalletID == o.WalletID &&
		t.Type == o.Type &&
		t.Symbol == o.Symbol &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Fee.Equal(o.Fee) &&
		t.Date == o.Date &&
		t.Notes == o.Notes
}

// Validate checks the transaction and applies quick fixes: symbol and
// currency are uppercased, a missing currency defaults to USD, a missing
// date defaults to today. The FIFO engine assumes its input passed here.
func (t *Transaction) Validate() error {
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return err
	}
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	if t.Symbol == "" {
		return fmt.Errorf("%s transaction symbol is missing", t.Type)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%s %s quantity must be positive, got %s", t.Type, t.Symbol, t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("%s %s price per unit cannot be negative, got %s", t.Type, t.Symbol, t.Price.Decimal())
	}
	if t.Fee.IsNegative() {
		return fmt.Errorf("%s %s fee cannot be negative, got %s", t.Type, t.Symbol, t.Fee.Decimal())
	}
	currency := strings.ToUpper(strings.TrimSpace(t.Price.Currency()))
	if currency == "" {
		currency = "USD"
	}
	t.Price = M(t.Price.Decimal(), currency)
	t.Fee = M(t.Fee.Decimal(), currency)
	if t.Date.IsZero() {
		t.Date = Today()
	}
	return nil
}

// sortTransactions sorts ascending by date. The sort is stable: transactions
// on the same day keep their insertion order, so repeated runs over the same
// input produce identical output.
func sortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
}
