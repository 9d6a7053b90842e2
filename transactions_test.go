package cryptoledger

import (
	"testing"
)

func TestParseTxType(t *testing.T) {
	testCases := []struct {
		in      string
		want    TxType
		wantErr bool
	}{
		{in: "buy", want: TxBuy},
		{in: "SELL", want: TxSell},
		{in: "transfer_in", want: TxTransferIn},
		{in: "transfer-out", want: TxTransferOut},
		{in: " exchange ", want: TxExchange},
		{in: "stake", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseTxType(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTxType(%q) = %s, want an error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTxType(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTxType(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestTxType_AcquiresDisposes(t *testing.T) {
	if !TxBuy.Acquires() || !TxTransferIn.Acquires() || TxSell.Acquires() {
		t.Errorf("Acquires() misclassifies")
	}
	if !TxSell.Disposes() || !TxTransferOut.Disposes() || TxExchange.Disposes() {
		t.Errorf("Disposes() misclassifies")
	}
}

func TestTransaction_Totals(t *testing.T) {
	tx := Transaction{
		Type: TxBuy, Symbol: "BTC", Quantity: Q(0.5),
		Price: M(40000, "USD"), Fee: M(25, "USD"),
		Date: MustParseDate("2024-01-01"),
	}
	if !tx.TotalCost().Equal(M(20000, "USD")) {
		t.Errorf("TotalCost() = %s, want $20,000.00", tx.TotalCost())
	}
	if !tx.TotalWithFee().Equal(M(20025, "USD")) {
		t.Errorf("TotalWithFee() = %s, want $20,025.00", tx.TotalWithFee())
	}
}

func TestTransaction_ValidateDefaults(t *testing.T) {
	tx := Transaction{Type: TxBuy, Symbol: " eth ", Quantity: Q(1.0), Price: M(2000, "")}
	if err := tx.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if tx.Symbol != "ETH" {
		t.Errorf("symbol = %q, want trimmed uppercase ETH", tx.Symbol)
	}
	if tx.Currency() != "USD" || tx.Fee.Currency() != "USD" {
		t.Errorf("currency = %q/%q, want USD defaults", tx.Currency(), tx.Fee.Currency())
	}
	if tx.Date.IsZero() {
		t.Errorf("date stayed zero, want today")
	}
}
