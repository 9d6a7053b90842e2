package renderer

import (
	"fmt"
	"strings"

	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
)

// TransactionsMarkdown renders a transaction list as a table.
func TransactionsMarkdown(txs []cryptoledger.Transaction) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprint(&b, "No transactions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Type | Symbol | Quantity | Price | Fee | Wallet | Notes |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|:---|")
	for _, tx := range txs {
		fee := ""
		if !tx.Fee.IsZero() {
			fee = tx.Fee.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Type, tx.Symbol, tx.Quantity, tx.Price, fee, tx.WalletID, tx.Notes)
	}
	return b.String()
}
