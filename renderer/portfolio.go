package renderer

import (
	"fmt"
	"strings"

	cryptoledger "github.com/fromtaoyuanhsinchuuuu/CryptoLedger"
)

// PortfolioMarkdown renders the valued holdings and their distribution.
func PortfolioMarkdown(v cryptoledger.PortfolioValue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio (%s)\n\n", v.Currency)
	if len(v.Items) == 0 {
		fmt.Fprint(&b, "No holdings.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Price | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, item := range v.Items {
		if item.Priced {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", item.Symbol, item.Quantity, item.Price, item.Value)
		} else {
			fmt.Fprintf(&b, "| %s | %s | n/a | n/a |\n", item.Symbol, item.Quantity)
		}
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** |\n\n", v.Total)

	distribution := v.Distribution()
	if len(distribution) == 0 {
		return b.String()
	}
	fmt.Fprint(&b, "## Distribution\n\n")
	fmt.Fprintln(&b, "| Symbol | Value | Share |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, slice := range distribution {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", slice.Symbol, slice.Value, slice.Weight)
	}
	return b.String()
}
