package cryptoledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Lot is a quantity of an asset acquired at one price and date, tagged with
// the transaction that created it. Open lots live in a per-symbol FIFO
// queue; a lot is reduced in place when partially consumed and removed when
// fully consumed, never mutated after removal.
type Lot struct {
	Date     Date
	Quantity Quantity
	Price    Money // unit price
	TxID     string
}

// Consumed is one portion of a disposal matched against a single lot, in
// oldest-first order.
type Consumed struct {
	Quantity Quantity
	Price    Money // unit price of the consumed lot
	Date     Date  // acquisition date of the consumed lot
	TxID     string
}

// lotQueue is the per-symbol FIFO queue, oldest lot first.
type lotQueue []Lot

// push appends a new lot to the tail of the queue.
func (q *lotQueue) push(l Lot) { *q = append(*q, l) }

// consume removes quantity units from the head of the queue, oldest lots
// first. A head lot larger than the remaining request is split: its quantity
// is reduced and it stays at the head with price, date and source unchanged.
// It returns the consumed portions and the quantity that could not be
// satisfied because the queue ran out.
func (q *lotQueue) consume(quantity Quantity) (portions []Consumed, short Quantity) {
	remaining := quantity
	for remaining.IsPositive() && len(*q) > 0 {
		head := (*q)[0]
		used := head.Quantity
		if head.Quantity.GreaterThan(remaining) {
			// partial: split the head lot
			used = remaining
			(*q)[0].Quantity = head.Quantity.Sub(remaining)
		} else {
			*q = (*q)[1:]
		}
		portions = append(portions, Consumed{
			Quantity: used,
			Price:    head.Price,
			Date:     head.Date,
			TxID:     head.TxID,
		})
		remaining = remaining.Sub(used)
	}
	return portions, remaining
}

// total returns the remaining quantity in the queue.
func (q lotQueue) total() Quantity {
	sum := Q(decimal.Zero)
	for _, l := range q {
		sum = sum.Add(l.Quantity)
	}
	return sum
}

// averageCost returns the quantity-weighted mean of the remaining lot
// prices. An empty queue has a zero average cost.
func (q lotQueue) averageCost() Money {
	if len(q) == 0 {
		return Money{}
	}
	cost := decimal.Zero
	qty := decimal.Zero
	for _, l := range q {
		cost = cost.Add(l.Price.Decimal().Mul(l.Quantity.Decimal()))
		qty = qty.Add(l.Quantity.Decimal())
	}
	if qty.IsZero() {
		return M(decimal.Zero, q[0].Price.Currency())
	}
	return M(cost.Div(qty), q[0].Price.Currency())
}

// Inventory holds the per-symbol lot queues of one matching-engine pass. It
// is a derived snapshot, recomputed from the full transaction history on
// every pass, and is owned by exactly one pass: it is never shared between
// calls.
type Inventory struct {
	queues map[string]*lotQueue
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{queues: make(map[string]*lotQueue)}
}

func (inv *Inventory) queue(symbol string) *lotQueue {
	q, ok := inv.queues[symbol]
	if !ok {
		q = &lotQueue{}
		inv.queues[symbol] = q
	}
	return q
}

// Append adds a new open lot at the tail of the symbol's queue.
func (inv *Inventory) Append(symbol string, l Lot) {
	inv.queue(symbol).push(l)
}

// Consume removes quantity units of the symbol, oldest lots first. The
// returned shortfall is the unsatisfied remainder; it is a data-integrity
// signal, not an error, and is zero in a consistent ledger.
func (inv *Inventory) Consume(symbol string, quantity Quantity) (portions []Consumed, short Quantity) {
	return inv.queue(symbol).consume(quantity)
}

// Snapshot returns, non-destructively, the total remaining quantity of the
// symbol and the quantity-weighted average cost of its remaining lots.
func (inv *Inventory) Snapshot(symbol string) (Quantity, Money) {
	q, ok := inv.queues[symbol]
	if !ok {
		return Q(decimal.Zero), Money{}
	}
	return q.total(), q.averageCost()
}

// Lots returns a copy of the symbol's open lots, oldest first.
func (inv *Inventory) Lots(symbol string) []Lot {
	q, ok := inv.queues[symbol]
	if !ok {
		return nil
	}
	out := make([]Lot, len(*q))
	copy(out, *q)
	return out
}

// Symbols returns the symbols with a positive remaining quantity, sorted.
func (inv *Inventory) Symbols() []string {
	var out []string
	for symbol, q := range inv.queues {
		if q.total().IsPositive() {
			out = append(out, symbol)
		}
	}
	sort.Strings(out)
	return out
}
