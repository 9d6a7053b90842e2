package cryptoledger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProcessTransactions_FIFOSplit(t *testing.T) {
	txs := []Transaction{
		testBuy("b1", "2024-01-01", "BTC", 1.0, 10000),
		testBuy("b2", "2024-02-01", "BTC", 1.0, 15000),
		testSell("s1", "2024-06-01", "BTC", 1.5, 30000),
	}

	result := ProcessTransactions(txs)

	want := []RealizedGain{
		{
			Symbol: "BTC", BuyDate: MustParseDate("2024-01-01"), SellDate: MustParseDate("2024-06-01"),
			BuyPrice: M(10000, "USD"), SellPrice: M(30000, "USD"), Quantity: Q(1.0),
			CostBasis: M(10000, "USD"), Proceeds: M(30000, "USD"), Gain: M(20000, "USD"),
			Term: ShortTerm, HoldingDays: 152, BuyTxID: "b1", SellTxID: "s1",
		},
		{
			Symbol: "BTC", BuyDate: MustParseDate("2024-02-01"), SellDate: MustParseDate("2024-06-01"),
			BuyPrice: M(15000, "USD"), SellPrice: M(30000, "USD"), Quantity: Q(0.5),
			CostBasis: M(7500, "USD"), Proceeds: M(15000, "USD"), Gain: M(7500, "USD"),
			Term: ShortTerm, HoldingDays: 121, BuyTxID: "b2", SellTxID: "s1",
		},
	}
	if diff := cmp.Diff(want, result.Gains["BTC"]); diff != "" {
		t.Errorf("Gains mismatch (-want +got):\n%s", diff)
	}
	if len(result.Shortfalls) != 0 {
		t.Errorf("Shortfalls = %v, want none", result.Shortfalls)
	}

	// Half of the second lot remains at its original cost.
	qty, avg := result.Inventory.Snapshot("BTC")
	if !qty.Equal(Q(0.5)) {
		t.Errorf("residual quantity = %s, want 0.5", qty)
	}
	if !avg.Equal(M(15000, "USD")) {
		t.Errorf("residual average cost = %s, want $15,000.00", avg)
	}
}

func TestProcessTransactions_Shortfall(t *testing.T) {
	txs := []Transaction{
		testBuy("b1", "2024-03-01", "ETH", 3.0, 2000),
		testSell("s1", "2024-09-01", "ETH", 5.0, 3000),
	}

	result := ProcessTransactions(txs)

	gains := result.Gains["ETH"]
	if len(gains) != 1 {
		t.Fatalf("got %d gains, want 1", len(gains))
	}
	if !gains[0].Quantity.Equal(Q(3.0)) || !gains[0].Gain.Equal(M(3000, "USD")) {
		t.Errorf("gain = %+v, want 3 ETH for $3,000.00", gains[0])
	}

	want := []Shortfall{{Symbol: "ETH", SellTxID: "s1", Date: MustParseDate("2024-09-01"), Quantity: Q(2.0)}}
	if diff := cmp.Diff(want, result.Shortfalls); diff != "" {
		t.Errorf("Shortfalls mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessTransactions_TermBoundary(t *testing.T) {
	testCases := []struct {
		name     string
		sellDate string
		want     Term
		wantDays int
	}{
		{name: "exactly 365 days is short", sellDate: "2024-01-01", want: ShortTerm, wantDays: 365},
		{name: "366 days is long", sellDate: "2024-01-02", want: LongTerm, wantDays: 366},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txs := []Transaction{
				testBuy("b1", "2023-01-01", "BTC", 1.0, 10000),
				testSell("s1", tc.sellDate, "BTC", 1.0, 20000),
			}
			gains := ProcessTransactions(txs).Gains["BTC"]
			if len(gains) != 1 {
				t.Fatalf("got %d gains, want 1", len(gains))
			}
			if gains[0].Term != tc.want || gains[0].HoldingDays != tc.wantDays {
				t.Errorf("term = %s after %d days, want %s after %d days",
					gains[0].Term, gains[0].HoldingDays, tc.want, tc.wantDays)
			}
		})
	}
}

func TestProcessTransactions_TransfersMoveInventory(t *testing.T) {
	txs := []Transaction{
		testTx(TxTransferIn, "t1", "2024-01-01", "SOL", 10, 100),
		testTx(TxTransferOut, "t2", "2024-03-01", "SOL", 4, 150),
	}

	result := ProcessTransactions(txs)

	gains := result.Gains["SOL"]
	if len(gains) != 1 || !gains[0].Gain.Equal(M(200, "USD")) {
		t.Errorf("gains = %+v, want one gain of $200.00", gains)
	}
	qty, _ := result.Inventory.Snapshot("SOL")
	if !qty.Equal(Q(6)) {
		t.Errorf("residual quantity = %s, want 6", qty)
	}
}

func TestProcessTransactions_ExchangeHasNoGainEffect(t *testing.T) {
	txs := []Transaction{
		testBuy("b1", "2024-01-01", "BTC", 1.0, 10000),
		testTx(TxExchange, "x1", "2024-02-01", "BTC", 0.5, 20000),
	}

	result := ProcessTransactions(txs)

	if len(result.Gains) != 0 {
		t.Errorf("Gains = %v, want none", result.Gains)
	}
	qty, _ := result.Inventory.Snapshot("BTC")
	if !qty.Equal(Q(1.0)) {
		t.Errorf("residual quantity = %s, want 1 (exchange must not touch inventory)", qty)
	}
}

func TestProcessTransactions_SortsInputByDate(t *testing.T) {
	// The sell is listed first but dated last; the engine must still match
	// it against the earlier buy.
	txs := []Transaction{
		testSell("s1", "2024-06-01", "BTC", 1.0, 20000),
		testBuy("b1", "2024-01-01", "BTC", 1.0, 10000),
	}

	result := ProcessTransactions(txs)

	if len(result.Shortfalls) != 0 {
		t.Errorf("Shortfalls = %v, want none", result.Shortfalls)
	}
	gains := result.Gains["BTC"]
	if len(gains) != 1 || !gains[0].Gain.Equal(M(10000, "USD")) {
		t.Errorf("gains = %+v, want one gain of $10,000.00", gains)
	}
	if len(txs) != 2 || txs[0].ID != "s1" {
		t.Errorf("input slice was reordered: %v", txs)
	}
}

func TestProcessTransactions_Deterministic(t *testing.T) {
	txs := []Transaction{
		testBuy("b1", "2024-01-01", "BTC", 1.0, 10000),
		testBuy("b2", "2024-01-01", "BTC", 1.0, 12000),
		testBuy("b3", "2024-01-01", "ETH", 5.0, 2000),
		testSell("s1", "2024-06-01", "BTC", 1.5, 30000),
		testSell("s2", "2024-06-01", "ETH", 2.0, 3000),
	}

	first := ProcessTransactions(txs).AllGains()
	second := ProcessTransactions(txs).AllGains()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two passes over the same input differ (-first +second):\n%s", diff)
	}
	// Same-day buys are matched in insertion order.
	if first[0].BuyTxID != "b1" || first[1].BuyTxID != "b2" {
		t.Errorf("same-day lots consumed out of insertion order: %s then %s", first[0].BuyTxID, first[1].BuyTxID)
	}
}

func TestCalculateRealizedGains_YearFilter(t *testing.T) {
	txs := []Transaction{
		testBuy("b1", "2023-01-01", "BTC", 2.0, 10000),
		testSell("s1", "2023-06-01", "BTC", 1.0, 15000), // 2023: +5000 short
		testSell("s2", "2024-06-01", "BTC", 1.0, 30000), // 2024: +20000 long
	}

	testCases := []struct {
		name      string
		year      int
		wantCount int
		wantShort Money
		wantLong  Money
	}{
		{name: "2023 only", year: 2023, wantCount: 1, wantShort: M(5000, "USD"), wantLong: M(0, "")},
		{name: "2024 only", year: 2024, wantCount: 1, wantShort: M(0, ""), wantLong: M(20000, "USD")},
		{name: "all years", year: 0, wantCount: 2, wantShort: M(5000, "USD"), wantLong: M(20000, "USD")},
		{name: "empty year", year: 2025, wantCount: 0, wantShort: M(0, ""), wantLong: M(0, "")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary := CalculateRealizedGains(txs, tc.year)
			if len(summary.Gains) != tc.wantCount {
				t.Errorf("got %d gains, want %d", len(summary.Gains), tc.wantCount)
			}
			if !summary.ShortTerm.Equal(tc.wantShort) {
				t.Errorf("ShortTerm = %s, want %s", summary.ShortTerm, tc.wantShort)
			}
			if !summary.LongTerm.Equal(tc.wantLong) {
				t.Errorf("LongTerm = %s, want %s", summary.LongTerm, tc.wantLong)
			}
			if !summary.Total().Equal(tc.wantShort.Add(tc.wantLong)) {
				t.Errorf("Total() = %s, want %s", summary.Total(), tc.wantShort.Add(tc.wantLong))
			}
		})
	}
}

func TestCalculateRealizedGains_Empty(t *testing.T) {
	summary := CalculateRealizedGains(nil, 2024)
	if len(summary.Gains) != 0 || !summary.Total().IsZero() {
		t.Errorf("empty input: gains = %v total = %s, want none and zero", summary.Gains, summary.Total())
	}
}

func TestCalculateUnrealizedGains(t *testing.T) {
	txs := []Transaction{
		testBuy("b1", "2024-01-01", "BTC", 1.0, 10000),
		testBuy("b2", "2024-02-01", "ETH", 10.0, 2000),
		testBuy("b3", "2024-03-01", "DOGE", 1000, 0.1),
	}
	prices := map[string]Money{
		"BTC": M(30000, "USD"),
		"ETH": M(1500, "USD"),
		// DOGE has no price and must be omitted, not an error.
	}

	summary := CalculateUnrealizedGains(txs, prices)

	if len(summary.Positions) != 2 {
		t.Fatalf("got %d positions, want 2 (DOGE omitted)", len(summary.Positions))
	}
	btc, eth := summary.Positions[0], summary.Positions[1]
	if btc.Symbol != "BTC" || eth.Symbol != "ETH" {
		t.Fatalf("positions not sorted by symbol: %s, %s", btc.Symbol, eth.Symbol)
	}
	if !btc.Gain.Equal(M(20000, "USD")) {
		t.Errorf("BTC gain = %s, want $20,000.00", btc.Gain)
	}
	if !eth.Gain.Equal(M(-5000, "USD")) {
		t.Errorf("ETH gain = %s, want -$5,000.00", eth.Gain)
	}
	if !summary.Total.Equal(M(15000, "USD")) {
		t.Errorf("Total = %s, want $15,000.00", summary.Total)
	}
}

func TestCalculateUnrealizedGains_Empty(t *testing.T) {
	summary := CalculateUnrealizedGains(nil, nil)
	if len(summary.Positions) != 0 || !summary.Total.IsZero() {
		t.Errorf("empty input: positions = %v total = %s, want none and zero", summary.Positions, summary.Total)
	}
}
