// Package cmd implements the clx CLI to manage a crypto transaction ledger
// and its tax reports.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
	"github.com/google/subcommands"
)

// Register registers all clx subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&exchangeCmd{}, "transactions")
	c.Register(&transferInCmd{}, "transactions")
	c.Register(&transferOutCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&reportCmd{}, "reports")
	c.Register(&portfolioCmd{}, "reports")
	c.Register(&unrealizedCmd{}, "reports")

	c.Register(&fetchCmd{}, "prices")

	c.Register(&importCsvCmd{}, "data")
	c.Register(&exportCsvCmd{}, "data")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application it is short lived, so globals are fine here.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the transaction ledger file (JSONL format)")
var pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the stored prices file (JSONL format)")

// decodeLedger loads the ledger file; a missing file is an empty ledger.
func decodeLedger() (*cryptoledger.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, ledger file %q does not exist, starting empty", *ledgerFile)
		return cryptoledger.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cryptoledger.DecodeLedger(f)
}

// decodeMarket loads the prices file; a missing file is an empty price store.
func decodeMarket() (*cryptoledger.MarketData, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cryptoledger.NewMarketData(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cryptoledger.DecodeMarketData(f)
}

// saveMarket rewrites the prices file.
func saveMarket(m *cryptoledger.MarketData) error {
	f, err := os.Create(*pricesFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return cryptoledger.EncodeMarketData(f, m)
}

// appendTransaction validates the transaction and appends it to the ledger
// file. The staging ledger assigns the opaque transaction ID.
func appendTransaction(tx cryptoledger.Transaction) subcommands.ExitStatus {
	staging := cryptoledger.NewLedger()
	if err := staging.Append(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	tx = staging.Transactions()[0]

	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := cryptoledger.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s of %s %s on %s\n", tx.Type, tx.Quantity, tx.Symbol, tx.Date)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
