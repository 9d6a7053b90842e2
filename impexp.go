package cryptoledger

// This file handles the CSV import/export formats. Import is deliberately
// lenient about headers, decimals and dates, because the files come from
// exchange exports of varying quality; every rejected row is reported back
// to the caller instead of being silently dropped.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SkippedRow is one import row that was rejected, with the reason.
type SkippedRow struct {
	Line   int // 1-based line number in the source file
	Reason string
}

// ImportReport is the outcome of a CSV import: how many rows became
// transactions and which rows were skipped.
type ImportReport struct {
	Imported int
	Skipped  []SkippedRow
}

// parseLenientDecimal parses a decimal allowing thousands separators, and
// falls back to stripping any non-numeric characters (currency symbols).
func parseLenientDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, nil
	}
	var clean strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			clean.WriteRune(r)
		}
	}
	return decimal.NewFromString(clean.String())
}

var importTimeLayouts = []string{
	DateFormat,
	readDateFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

func parseLenientDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range importTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("unable to parse date %q", s)
}

// headerIndex maps lowercased header names to their column, accepting both
// the canonical long names and common short forms.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	aliases := map[string][]string{
		"type":     {"transaction_type"},
		"symbol":   {"crypto_symbol"},
		"price":    {"price_per_unit"},
		"currency": {"fiat_currency"},
		"date":     {"transaction_date"},
		"wallet":   {"wallet_id"},
	}
	for short, longs := range aliases {
		if _, ok := idx[short]; ok {
			continue
		}
		for _, long := range longs {
			if i, ok := idx[long]; ok {
				idx[short] = i
				break
			}
		}
	}
	return idx
}

// ImportTransactionsCSV reads transactions from CSV. Required columns:
// type, symbol, quantity, price and date (long header names from the
// original export format are accepted too). Optional: currency, fee, notes,
// wallet. Rows that fail to parse or validate are collected in the report;
// only a missing required column or an unreadable stream is an error.
func ImportTransactionsCSV(r io.Reader, walletID string) ([]Transaction, *ImportReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	idx := headerIndex(header)
	for _, required := range []string{"type", "symbol", "quantity", "price", "date"} {
		if _, ok := idx[required]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	report := &ImportReport{}
	var txs []Transaction
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}

		tx, err := importRow(row, field, walletID)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		txs = append(txs, tx)
		report.Imported++
	}
	return txs, report, nil
}

func importRow(row []string, field func([]string, string) string, walletID string) (Transaction, error) {
	txType, err := ParseTxType(field(row, "type"))
	if err != nil {
		return Transaction{}, err
	}
	quantity, err := parseLenientDecimal(field(row, "quantity"))
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid quantity %q", field(row, "quantity"))
	}
	price, err := parseLenientDecimal(field(row, "price"))
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid price %q", field(row, "price"))
	}
	fee, err := parseLenientDecimal(field(row, "fee"))
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid fee %q", field(row, "fee"))
	}
	day, err := parseLenientDate(field(row, "date"))
	if err != nil {
		return Transaction{}, err
	}
	if w := field(row, "wallet"); w != "" {
		walletID = w
	}
	currency := field(row, "currency")

	tx := Transaction{
		WalletID: walletID,
		Type:     txType,
		Symbol:   field(row, "symbol"),
		Quantity: Q(quantity),
		Price:    M(price, currency),
		Fee:      M(fee, currency),
		Date:     day,
		Notes:    field(row, "notes"),
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// ExportTransactionsCSV writes transactions in the import-compatible column
// set of the original export format.
func ExportTransactionsCSV(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "wallet_id", "transaction_type", "crypto_symbol", "quantity",
		"price_per_unit", "fiat_currency", "fee", "transaction_date", "notes",
	}); err != nil {
		return err
	}
	for _, tx := range txs {
		if err := cw.Write([]string{
			tx.ID, tx.WalletID, string(tx.Type), tx.Symbol, tx.Quantity.String(),
			tx.Price.Decimal().String(), tx.Currency(), tx.Fee.Decimal().String(),
			tx.Date.String(), tx.Notes,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportTaxReportCSV writes the report's realized-gain detail rows.
func ExportTaxReportCSV(w io.Writer, r *TaxReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"symbol", "buy_date", "sell_date", "buy_price", "sell_price", "quantity",
		"cost_basis", "proceeds", "gain", "term", "holding_period_days",
		"buy_transaction_id", "sell_transaction_id",
	}); err != nil {
		return err
	}
	for _, g := range r.Gains {
		if err := cw.Write([]string{
			g.Symbol, g.BuyDate.String(), g.SellDate.String(),
			g.BuyPrice.Decimal().String(), g.SellPrice.Decimal().String(),
			g.Quantity.String(), g.CostBasis.Decimal().String(),
			g.Proceeds.Decimal().String(), g.Gain.Decimal().String(),
			string(g.Term), strconv.Itoa(g.HoldingDays), g.BuyTxID, g.SellTxID,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportTaxSummaryCSV writes the one-line report summary.
func ExportTaxSummaryCSV(w io.Writer, r *TaxReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"year", "short_term_gains", "long_term_gains", "total_gains", "currency", "generated_on",
	}); err != nil {
		return err
	}
	if err := cw.Write([]string{
		strconv.Itoa(r.Year),
		r.ShortTermGains.Decimal().String(),
		r.LongTermGains.Decimal().String(),
		r.TotalGains().Decimal().String(),
		r.Currency,
		Today().String(),
	}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
