package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
	"github.com/google/subcommands"
)

// importCsvCmd imports transactions from a CSV file into the ledger.
type importCsvCmd struct {
	wallet string
}

func (*importCsvCmd) Name() string     { return "import-csv" }
func (*importCsvCmd) Synopsis() string { return "import transactions from a CSV file" }
func (*importCsvCmd) Usage() string {
	return `clx import-csv [-w <wallet>] <file.csv>

  Imports transactions from a CSV file and appends them to the ledger.
  Rows that fail to parse are skipped and reported; see 'clx topic import'.
`
}

func (c *importCsvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Wallet to assign imported transactions to")
}

func (c *importCsvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	txs, report, err := cryptoledger.ImportTransactionsCSV(in, c.wallet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	out, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	staging := cryptoledger.NewLedger()
	if err := staging.Append(txs...); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	for _, tx := range staging.Transactions() {
		if err := cryptoledger.EncodeTransaction(out, tx); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Imported %d transactions.\n", report.Imported)
	for _, skipped := range report.Skipped {
		fmt.Fprintf(os.Stderr, "Skipped line %d: %s\n", skipped.Line, skipped.Reason)
	}
	return subcommands.ExitSuccess
}

// exportCsvCmd exports the ledger to a CSV file.
type exportCsvCmd struct {
	wallet string
}

func (*exportCsvCmd) Name() string     { return "export-csv" }
func (*exportCsvCmd) Synopsis() string { return "export transactions to a CSV file" }
func (*exportCsvCmd) Usage() string {
	return `clx export-csv [-w <wallet>] <file.csv>

  Exports the ledger transactions to a CSV file in the import format.
`
}

func (c *exportCsvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Only export transactions of this wallet")
}

func (c *exportCsvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	transactions := ledger.Select(cryptoledger.Query{WalletID: c.wallet})
	if err := cryptoledger.ExportTransactionsCSV(out, transactions); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting to %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported %d transactions to %s.\n", len(transactions), f.Arg(0))
	return subcommands.ExitSuccess
}
