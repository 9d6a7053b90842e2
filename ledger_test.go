package cryptoledger

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLedger_AppendAssignsIDs(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(Transaction{
		Type:     TxBuy,
		Symbol:   "btc",
		Quantity: Q(1.0),
		Price:    M(10000, ""),
		Date:     MustParseDate("2024-01-01"),
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	tx := ledger.Transactions()[0]
	if tx.ID == "" {
		t.Errorf("Append() left the ID empty, want an assigned one")
	}
	if tx.Symbol != "BTC" {
		t.Errorf("symbol = %q, want uppercased BTC", tx.Symbol)
	}
	if tx.Currency() != "USD" {
		t.Errorf("currency = %q, want USD default", tx.Currency())
	}
}

func TestLedger_AppendRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
	}{
		{name: "unknown type", tx: Transaction{Type: "stake", Symbol: "BTC", Quantity: Q(1.0), Price: M(1, "USD")}},
		{name: "missing symbol", tx: Transaction{Type: TxBuy, Quantity: Q(1.0), Price: M(1, "USD")}},
		{name: "zero quantity", tx: Transaction{Type: TxBuy, Symbol: "BTC", Quantity: Q(0), Price: M(1, "USD")}},
		{name: "negative quantity", tx: Transaction{Type: TxBuy, Symbol: "BTC", Quantity: Q(-1.0), Price: M(1, "USD")}},
		{name: "negative price", tx: Transaction{Type: TxBuy, Symbol: "BTC", Quantity: Q(1.0), Price: M(-1, "USD")}},
		{name: "negative fee", tx: Transaction{Type: TxBuy, Symbol: "BTC", Quantity: Q(1.0), Price: M(1, "USD"), Fee: M(-1, "USD")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := NewLedger()
			if err := ledger.Append(tc.tx); err == nil {
				t.Errorf("Append() accepted an invalid transaction")
			}
			if ledger.Len() != 0 {
				t.Errorf("ledger has %d transactions after a failed append, want 0", ledger.Len())
			}
		})
	}
}

func TestLedger_AppendAllOrNothing(t *testing.T) {
	ledger := NewLedger()
	good := testBuy("", "2024-01-01", "BTC", 1.0, 10000)
	bad := Transaction{Type: TxBuy, Symbol: "ETH", Quantity: Q(0), Price: M(1, "USD")}

	if err := ledger.Append(good, bad); err == nil {
		t.Fatalf("Append() accepted a batch with an invalid transaction")
	}
	if ledger.Len() != 0 {
		t.Errorf("ledger has %d transactions after a failed batch, want 0", ledger.Len())
	}
}

func TestLedger_Select(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Append(
		testBuy("b1", "2024-01-01", "BTC", 1.0, 10000),
		testBuy("b2", "2024-02-01", "ETH", 5.0, 2000),
		testSell("s1", "2024-03-01", "BTC", 0.5, 20000),
		Transaction{ID: "b3", WalletID: "cold", Type: TxBuy, Symbol: "BTC", Quantity: Q(1.0), Price: M(11000, "USD"), Date: MustParseDate("2024-04-01")},
	); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	testCases := []struct {
		name  string
		query Query
		want  []string // expected IDs in order
	}{
		{name: "all", query: Query{}, want: []string{"b1", "b2", "s1", "b3"}},
		{name: "by symbol", query: Query{Symbol: "BTC"}, want: []string{"b1", "s1", "b3"}},
		{name: "by type", query: Query{Type: TxSell}, want: []string{"s1"}},
		{name: "by wallet", query: Query{WalletID: "cold"}, want: []string{"b3"}},
		{name: "date range", query: Query{From: MustParseDate("2024-02-01"), To: MustParseDate("2024-03-01")}, want: []string{"b2", "s1"}},
		{name: "no match", query: Query{Symbol: "XRP"}, want: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, tx := range ledger.Select(tc.query) {
				got = append(got, tx.ID)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Select(%+v) mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestLedger_Symbols(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Append(
		testBuy("", "2024-01-01", "ETH", 1.0, 2000),
		testBuy("", "2024-01-02", "BTC", 1.0, 10000),
		testSell("", "2024-01-03", "ETH", 1.0, 2100),
	); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	got := ledger.Symbols()
	if diff := cmp.Diff([]string{"BTC", "ETH"}, got); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
}

func TestLedger_Fmt(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Append(
		testSell("s1", "2024-03-01", "BTC", 0.5, 20000),
		testBuy("b1", "2024-01-01", "BTC", 1.0, 10000),
	); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	sorted := ledger.Fmt().Transactions()
	if sorted[0].ID != "b1" || sorted[1].ID != "s1" {
		t.Errorf("Fmt() order = %s, %s; want b1, s1", sorted[0].ID, sorted[1].ID)
	}
	// The original ledger keeps its insertion order.
	if ledger.Transactions()[0].ID != "s1" {
		t.Errorf("Fmt() reordered the original ledger")
	}
}

func TestLedger_TransactionsIsACopy(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Append(testBuy("b1", "2024-01-01", "BTC", 1.0, 10000)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	txs := ledger.Transactions()
	txs[0].Symbol = "HACKED"
	if ledger.Transactions()[0].Symbol != "BTC" {
		t.Errorf("mutating the returned slice changed the ledger")
	}
}

func TestLedger_AppendErrorMessage(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(Transaction{Type: TxSell, Symbol: "BTC", Quantity: Q(-1.0), Price: M(1, "USD")})
	if err == nil || !strings.Contains(err.Error(), "quantity must be positive") {
		t.Errorf("Append() error = %v, want a quantity message", err)
	}
}
