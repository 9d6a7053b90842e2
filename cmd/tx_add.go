package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
	"github.com/google/subcommands"
)

// txFlags carries the flags shared by all transaction-entry commands.
type txFlags struct {
	date     string
	wallet   string
	symbol   string
	quantity float64
	price    float64
	currency string
	fee      float64
	notes    string
}

func (c *txFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cryptoledger.Today().String(), "Transaction date (YYYY-MM-DD, or relative like -3d)")
	f.StringVar(&c.wallet, "w", "", "Wallet the transaction belongs to")
	f.StringVar(&c.symbol, "s", "", "Asset symbol (e.g. BTC)")
	f.Float64Var(&c.quantity, "q", 0, "Asset quantity")
	f.Float64Var(&c.price, "p", 0, "Price per unit in fiat currency")
	f.StringVar(&c.currency, "c", "USD", "Fiat currency of price and fee")
	f.Float64Var(&c.fee, "fee", 0, "Transaction fee in fiat currency")
	f.StringVar(&c.notes, "m", "", "An optional note for the transaction")
}

// transaction builds the transaction; full validation happens on append.
func (c *txFlags) transaction(txType cryptoledger.TxType) (cryptoledger.Transaction, error) {
	day, err := cryptoledger.ParseDate(c.date)
	if err != nil {
		return cryptoledger.Transaction{}, fmt.Errorf("invalid date: %w", err)
	}
	return cryptoledger.Transaction{
		WalletID: c.wallet,
		Type:     txType,
		Symbol:   c.symbol,
		Quantity: cryptoledger.Q(c.quantity),
		Price:    cryptoledger.M(c.price, c.currency),
		Fee:      cryptoledger.M(c.fee, c.currency),
		Date:     day,
		Notes:    c.notes,
	}, nil
}

func (c *txFlags) execute(f *flag.FlagSet, txType cryptoledger.TxType) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	tx, err := c.transaction(txType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return appendTransaction(tx)
}

// --- buy ---

type buyCmd struct{ txFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase, opening a new lot" }
func (*buyCmd) Usage() string {
	return `clx buy -s <symbol> -q <quantity> -p <price> [-d <date>] [-w <wallet>] [-c <currency>] [-fee <fee>] [-m <note>]

  Records a buy. The quantity becomes a new open lot for FIFO matching.
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }
func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(f, cryptoledger.TxBuy)
}

// --- sell ---

type sellCmd struct{ txFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale, realizing gains against the oldest lots" }
func (*sellCmd) Usage() string {
	return `clx sell -s <symbol> -q <quantity> -p <price> [-d <date>] [-w <wallet>] [-c <currency>] [-fee <fee>] [-m <note>]

  Records a sell. Reports will match it against the oldest open lots.
`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }
func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(f, cryptoledger.TxSell)
}

// --- exchange ---

type exchangeCmd struct{ txFlags }

func (*exchangeCmd) Name() string     { return "exchange" }
func (*exchangeCmd) Synopsis() string { return "record a crypto-to-crypto trade (no gain effect)" }
func (*exchangeCmd) Usage() string {
	return `clx exchange -s <symbol> -q <quantity> -p <price> [-d <date>] [-w <wallet>] [-m <note>]

  Records an exchange. Exchanges are listed but carry no gain or loss in
  this version; see 'clx topic transactions'.
`
}
func (c *exchangeCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }
func (c *exchangeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(f, cryptoledger.TxExchange)
}

// --- transfer-in ---

type transferInCmd struct{ txFlags }

func (*transferInCmd) Name() string     { return "transfer-in" }
func (*transferInCmd) Synopsis() string { return "record assets moved in, opening a new lot" }
func (*transferInCmd) Usage() string {
	return `clx transfer-in -s <symbol> -q <quantity> -p <price> [-d <date>] [-w <wallet>] [-m <note>]

  Records a transfer in. Use the original acquisition price and date so the
  cost basis stays honest.
`
}
func (c *transferInCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }
func (c *transferInCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(f, cryptoledger.TxTransferIn)
}

// --- transfer-out ---

type transferOutCmd struct{ txFlags }

func (*transferOutCmd) Name() string     { return "transfer-out" }
func (*transferOutCmd) Synopsis() string { return "record assets moved out, consuming the oldest lots" }
func (*transferOutCmd) Usage() string {
	return `clx transfer-out -s <symbol> -q <quantity> -p <price> [-d <date>] [-w <wallet>] [-m <note>]

  Records a transfer out. Like a sell, it consumes the oldest open lots.
`
}
func (c *transferOutCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }
func (c *transferOutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(f, cryptoledger.TxTransferOut)
}
