// Package change computes which denominations to return from a drawer.
//
// Allocation is greedy: walk catalog from the largest value, take as much of
// each denomination as due allows and the drawer holds, never backtrack.
// With canonical currency sets (USD) this finds a decomposition whenever one
// exists; for odd sets, e.g. {10,7,1} or a drawer missing key coins, it may
// report INSUFFICIENT_FUNDS although another allocation would succeed.
//
// Compute is a pure function of its inputs, safe for concurrent use
// with independent or shared read-only drawers.
package change

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/till/currency"
	"github.com/temoto/till/drawer"
)

type Status string

const (
	StatusInsufficientFunds Status = "INSUFFICIENT_FUNDS"
	StatusOpen              Status = "OPEN"
	StatusClosed            Status = "CLOSED"
)

var ErrTenderBelowPrice = errors.New("tendered amount below price")

// Item is amount of one denomination to dispense, in minor units.
type Item struct {
	Name   string
	Amount currency.Amount
}

// Major renders amount in major units, e.g. "0.5".
func (self Item) Major() string { return self.Amount.Format100I() }

// Result Change is ordered from highest denomination to lowest, zero amounts omitted.
// INSUFFICIENT_FUNDS always carries empty Change.
type Result struct {
	Status Status
	Change []Item
}

func (self Result) OK() bool { return self.Status == StatusOpen || self.Status == StatusClosed }

func (self Result) Total() currency.Amount {
	sum := currency.Amount(0)
	for _, item := range self.Change {
		sum += item.Amount
	}
	return sum
}

// Slots converts Change for drawer.Withdraw.
func (self Result) Slots() []drawer.Slot {
	slots := make([]drawer.Slot, len(self.Change))
	for i, item := range self.Change {
		slots[i] = drawer.Slot{Name: item.Name, Amount: item.Amount}
	}
	return slots
}

func (self Result) String() string {
	parts := make([]string, 0, len(self.Change)+1)
	parts = append(parts, "Status: "+string(self.Status))
	for _, item := range self.Change {
		parts = append(parts, fmt.Sprintf("%s: $%s", item.Name, item.Major()))
	}
	return strings.Join(parts, " ")
}

// Compute change for tendered-price.
// Callers are expected to reject underpayment and short-circuit exact payment,
// still tendered<price is reported as ErrTenderBelowPrice.
func Compute(price, tendered currency.Amount, d *drawer.Drawer) (Result, error) {
	if tendered < price {
		return Result{}, errors.Annotatef(ErrTenderBelowPrice, "price=%s tendered=%s",
			price.Format100I(), tendered.Format100I())
	}
	return ComputeDue(tendered-price, d), nil
}

func ComputeDue(due currency.Amount, d *drawer.Drawer) Result {
	if due == 0 {
		return Result{Status: StatusOpen}
	}
	originalDue := due
	if d.Total() < due {
		return Result{Status: StatusInsufficientFunds}
	}

	var items []Item
	catalog := d.Catalog()
	for i := 0; i < catalog.Len(); i++ {
		denom := catalog.At(i)
		take := (due / denom.Value) * denom.Value
		if available := d.Get(denom.Name); take > available {
			take = available
		}
		if take > 0 {
			due -= take
			items = append(items, Item{Name: denom.Name, Amount: take})
		}
	}
	if due > 0 {
		return Result{Status: StatusInsufficientFunds}
	}

	if d.Total() == originalDue {
		return Result{Status: StatusClosed, Change: items}
	}
	return Result{Status: StatusOpen, Change: items}
}
