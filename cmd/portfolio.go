package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
	"github.com/fromtaoyuanhsinchuuuu/CryptoLedger/renderer"
	"github.com/google/subcommands"
)

// portfolioCmd shows current holdings, values and distribution.
type portfolioCmd struct {
	currency string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "current holdings, values and distribution" }
func (*portfolioCmd) Usage() string {
	return `clx portfolio [-c <currency>]

  Shows the residual holdings per symbol with their current value and the
  distribution of the portfolio, based on the stored prices.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "USD", "Reporting currency")
}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	valuation := cryptoledger.Valuation(ledger.Transactions(), market.PriceMap(), strings.ToUpper(c.currency))
	printMarkdown(renderer.PortfolioMarkdown(valuation))
	return subcommands.ExitSuccess
}
