package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
	"github.com/fromtaoyuanhsinchuuuu/CryptoLedger/renderer"
	"github.com/google/subcommands"
)

// reportCmd generates the tax report for one year.
type reportCmd struct {
	year     int
	currency string
	csvDir   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "tax report with short/long term realized gains" }
func (*reportCmd) Usage() string {
	return `clx report [-year <year>] [-c <currency>] [-csv <dir>]

  Computes the FIFO realized gains of the tax year, split into short and
  long term. With -csv, also writes the detail and summary CSV files.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", cryptoledger.Today().Year(), "Tax year to report on")
	f.StringVar(&c.currency, "c", "USD", "Reporting currency")
	f.StringVar(&c.csvDir, "csv", "", "Directory to write the CSV files to")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	currency := strings.ToUpper(c.currency)
	report := cryptoledger.GenerateTaxReport(ledger.Transactions(), c.year, currency)
	printMarkdown(renderer.TaxReportMarkdown(report))

	if c.csvDir != "" {
		if err := c.exportCSV(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting report: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func (c *reportCmd) exportCSV(report *cryptoledger.TaxReport) error {
	if err := os.MkdirAll(c.csvDir, 0755); err != nil {
		return err
	}
	detail := filepath.Join(c.csvDir, fmt.Sprintf("crypto_tax_report_%d_%s.csv", report.Year, report.Currency))
	summary := filepath.Join(c.csvDir, fmt.Sprintf("crypto_tax_summary_%d_%s.csv", report.Year, report.Currency))

	f, err := os.Create(detail)
	if err != nil {
		return err
	}
	if err := cryptoledger.ExportTaxReportCSV(f, report); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	f, err = os.Create(summary)
	if err != nil {
		return err
	}
	if err := cryptoledger.ExportTaxSummaryCSV(f, report); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Wrote %s and %s.\n", detail, summary)
	return nil
}

// unrealizedCmd shows the paper gains on open lots.
type unrealizedCmd struct{}

func (*unrealizedCmd) Name() string     { return "unrealized" }
func (*unrealizedCmd) Synopsis() string { return "unrealized gains on the remaining inventory" }
func (*unrealizedCmd) Usage() string {
	return `clx unrealized

  Values the residual open lots against the stored prices (see 'clx fetch')
  and shows the unrealized gain per symbol. Symbols without a stored price
  are left out.
`
}
func (*unrealizedCmd) SetFlags(*flag.FlagSet) {}

func (c *unrealizedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	market, err := decodeMarket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}

	summary := cryptoledger.CalculateUnrealizedGains(ledger.Transactions(), market.PriceMap())
	printMarkdown(renderer.UnrealizedMarkdown(summary))
	return subcommands.ExitSuccess
}
