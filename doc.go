// Package cryptoledger tracks cryptocurrency holdings across wallets and
// computes capital gains using FIFO (first-in-first-out) lot matching.
//
// The package is built around a small, pure core:
//   - Lot ledger: per-symbol FIFO queues of open purchase lots, with
//     partial/full consumption and non-destructive snapshots (lots.go).
//   - Matching engine: a single chronological pass over a transaction list
//     that drives the lot ledger and emits realized gains (calculator.go).
//   - Aggregation: realized gains filtered by tax year and split into
//     short/long term, and unrealized gains derived from residual lots and
//     current prices (calculator.go).
//   - Reporting: tax report assembly (reports_tax.go) and portfolio
//     valuation (portfolio.go).
//
// Everything around the core is a collaborator with a narrow interface:
// the JSONL transaction log (encode_ledger.go), the persisted price file
// (market.go), the CoinGecko price client (coingecko.go), and CSV
// import/export (impexp.go). The core performs no I/O: it is handed a
// transaction slice and a price map, and recomputes everything from the
// full history on every call.
//
// This package is the foundation of the `clx` command-line tool.
package cryptoledger
