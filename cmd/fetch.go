package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
	"github.com/google/subcommands"
)

// fetchCmd refreshes the stored prices from CoinGecko.
type fetchCmd struct {
	currency string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "update stored prices from CoinGecko" }
func (*fetchCmd) Usage() string {
	return `clx fetch [-c <currency>]

  Fetches the current price of every symbol in the ledger and stores them in
  the prices file. Symbols that cannot be priced are skipped with a warning;
  the file keeps its previous quote for them.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "USD", "Fiat currency to fetch prices in")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	symbols := ledger.Symbols()
	if len(symbols) == 0 {
		fmt.Fprintln(os.Stderr, "No symbols in the ledger, nothing to fetch.")
		return subcommands.ExitSuccess
	}

	market, err := decodeMarket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}

	prices, err := cryptoledger.NewCoinGecko().CurrentPrices(symbols, strings.ToUpper(c.currency))
	if err != nil {
		// A partial price map is still worth storing.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	today := cryptoledger.Today()
	for symbol, price := range prices {
		market.Set(symbol, price, today)
	}

	if err := saveMarket(market); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving prices %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Updated %d of %d prices in %q.\n", len(prices), len(symbols), *pricesFile)
	return subcommands.ExitSuccess
}
