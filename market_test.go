package cryptoledger

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarketData_SetReplaces(t *testing.T) {
	m := NewMarketData()
	m.Set("BTC", M(10000, "USD"), MustParseDate("2024-01-01"))
	m.Set("BTC", M(30000, "USD"), MustParseDate("2024-06-01"))

	price, ok := m.Price("BTC")
	if !ok || !price.Equal(M(30000, "USD")) {
		t.Errorf("Price(BTC) = %s, %v; want the latest quote", price, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if _, ok := m.Price("ETH"); ok {
		t.Errorf("Price(ETH) found a quote, want none")
	}
}

func TestMarketData_PriceMap(t *testing.T) {
	m := NewMarketData()
	m.Set("BTC", M(30000, "USD"), MustParseDate("2024-06-01"))
	m.Set("ETH", M(2000, "USD"), MustParseDate("2024-06-01"))

	prices := m.PriceMap()
	if len(prices) != 2 || !prices["BTC"].Equal(M(30000, "USD")) {
		t.Errorf("PriceMap() = %v", prices)
	}
}

func TestEncodeMarketData_SortedJSONL(t *testing.T) {
	m := NewMarketData()
	m.Set("ETH", M(2000, "USD"), MustParseDate("2024-06-01"))
	m.Set("BTC", M(30000, "USD"), MustParseDate("2024-06-01"))

	var buf bytes.Buffer
	if err := EncodeMarketData(&buf, m); err != nil {
		t.Fatalf("EncodeMarketData() error = %v", err)
	}
	want := `{"symbol":"BTC","price":30000,"currency":"USD","date":"2024-06-01"}
{"symbol":"ETH","price":2000,"currency":"USD","date":"2024-06-01"}
`
	if buf.String() != want {
		t.Errorf("EncodeMarketData()\n got %q\nwant %q", buf.String(), want)
	}
}

func TestDecodeMarketData_RoundTrip(t *testing.T) {
	m := NewMarketData()
	m.Set("BTC", M(30000.25, "USD"), MustParseDate("2024-06-01"))
	m.Set("ETH", M(2000, "EUR"), MustParseDate("2024-05-31"))

	var buf bytes.Buffer
	if err := EncodeMarketData(&buf, m); err != nil {
		t.Fatalf("EncodeMarketData() error = %v", err)
	}
	decoded, err := DecodeMarketData(&buf)
	if err != nil {
		t.Fatalf("DecodeMarketData() error = %v", err)
	}

	want, got := m.Quotes(), decoded.Quotes()
	if len(got) != len(want) {
		t.Fatalf("decoded %d quotes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Symbol != want[i].Symbol || !got[i].Price.Equal(want[i].Price) || !got[i].Date.Equal(want[i].Date) {
			t.Errorf("quote %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeMarketData_QuotesBadLine(t *testing.T) {
	_, err := DecodeMarketData(strings.NewReader("garbage\n"))
	if err == nil || !strings.Contains(err.Error(), "garbage") {
		t.Errorf("DecodeMarketData() error = %v, want the offending line quoted", err)
	}
}
