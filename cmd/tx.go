package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
	"github.com/fromtaoyuanhsinchuuuu/CryptoLedger/renderer"
	"github.com/google/subcommands"
)

// txCmd lists transactions with optional filters.
type txCmd struct {
	wallet string
	symbol string
	txType string
	from   string
	to     string
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list recorded transactions" }
func (*txCmd) Usage() string {
	return `clx tx [-w <wallet>] [-s <symbol>] [-t <type>] [-from <date>] [-to <date>] [-tail <n>]

  Lists transactions sorted by date, filtered by the given criteria.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Only transactions of this wallet")
	f.StringVar(&c.symbol, "s", "", "Only transactions of this symbol")
	f.StringVar(&c.txType, "t", "", "Only transactions of this type")
	f.StringVar(&c.from, "from", "", "Only transactions on or after this date")
	f.StringVar(&c.to, "to", "", "Only transactions on or before this date")
	f.IntVar(&c.tail, "tail", 0, "Only the last n transactions")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := cryptoledger.Query{WalletID: c.wallet, Symbol: c.symbol}
	if c.txType != "" {
		txType, err := cryptoledger.ParseTxType(c.txType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		query.Type = txType
	}
	var err error
	if c.from != "" {
		if query.From, err = cryptoledger.ParseDate(c.from); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.to != "" {
		if query.To, err = cryptoledger.ParseDate(c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -to: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	transactions := ledger.Select(query)
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))
	return subcommands.ExitSuccess
}

// fmtCmd rewrites the ledger file in canonical form.
type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "validates and formats the ledger file into a canonical form" }
func (*fmtCmd) Usage() string {
	return `clx fmt

  Reads all transactions, validates them, sorts them by date, and writes
  them back in a canonical JSONL form.
`
}
func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := cryptoledger.EncodeLedger(out, ledger.Fmt()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d transactions in %q.\n", ledger.Len(), *ledgerFile)
	return subcommands.ExitSuccess
}
