package cryptoledger

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Ledger is the transaction store: an append-only list of validated
// transactions in insertion order. The FIFO engine sorts by date itself, so
// callers need not keep the ledger pre-sorted.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append validates each transaction and appends it to the ledger. A missing
// ID is assigned here, so the ID stays opaque to callers. On error the
// ledger is left unchanged.
func (l *Ledger) Append(txs ...Transaction) error {
	validated := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid transaction: %w", err)
		}
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		validated = append(validated, tx)
	}
	l.transactions = append(l.transactions, validated...)
	return nil
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns a copy of all transactions in insertion order.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Query filters transactions. Zero-valued fields do not filter.
type Query struct {
	WalletID string
	Symbol   string
	Type     TxType
	From, To Date // inclusive bounds on the transaction date
}

// Select returns the transactions matching the query, sorted by date
// (insertion order within a day).
func (l *Ledger) Select(q Query) []Transaction {
	var out []Transaction
	for _, tx := range l.transactions {
		if q.WalletID != "" && tx.WalletID != q.WalletID {
			continue
		}
		if q.Symbol != "" && tx.Symbol != q.Symbol {
			continue
		}
		if q.Type != "" && tx.Type != q.Type {
			continue
		}
		if !q.From.IsZero() && tx.Date.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && tx.Date.After(q.To) {
			continue
		}
		out = append(out, tx)
	}
	sortTransactions(out)
	return out
}

// Symbols returns the distinct asset symbols present in the ledger, sorted.
func (l *Ledger) Symbols() []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range l.transactions {
		if !seen[tx.Symbol] {
			seen[tx.Symbol] = true
			out = append(out, tx.Symbol)
		}
	}
	sort.Strings(out)
	return out
}

// Fmt returns a copy of the ledger with transactions sorted chronologically,
// for canonical rewriting of the ledger file.
func (l *Ledger) Fmt() *Ledger {
	txs := l.Transactions()
	sortTransactions(txs)
	return &Ledger{transactions: txs}
}
