// Package drawer models till inventory: per denomination amount in minor units.
// Drawer is write-once: constructors validate everything and return
// a complete snapshot or an error, queries never mutate.
package drawer

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/till/currency"
)

var (
	ErrInvalidDenomination = errors.New("invalid denomination")
	ErrOverdraw            = errors.New("withdraw exceeds drawer amount")
)

// Entry is raw input line, amount in major units, e.g. {"QUARTER", 4.25}
type Entry struct {
	Name   string
	Amount float64
}

// Slot is inventory line in minor units.
type Slot struct {
	Name   string
	Amount currency.Amount
}

type Drawer struct {
	catalog *currency.Catalog
	amounts map[string]currency.Amount
	total   currency.Amount
}

// New converts entries to minor units (round to nearest cent) and accumulates
// repeated names. Unknown name fails with ErrInvalidDenomination.
func New(catalog *currency.Catalog, entries ...Entry) (*Drawer, error) {
	slots := make([]Slot, 0, len(entries))
	for _, e := range entries {
		a, err := currency.FromMajor(e.Amount)
		if err != nil {
			return nil, errors.Annotatef(err, "drawer name=%s", e.Name)
		}
		slots = append(slots, Slot{Name: e.Name, Amount: a})
	}
	return FromSlots(catalog, slots...)
}

func FromSlots(catalog *currency.Catalog, slots ...Slot) (*Drawer, error) {
	if catalog == nil {
		panic("code error drawer.FromSlots catalog=nil")
	}
	d := &Drawer{
		catalog: catalog,
		amounts: make(map[string]currency.Amount, len(slots)),
	}
	for _, s := range slots {
		name := catalog.Canonical(s.Name)
		if !catalog.Has(name) {
			return nil, errors.Annotatef(ErrInvalidDenomination, "name=%s", s.Name)
		}
		// total <= MaxAmount holds, subtraction can't wrap
		if s.Amount > currency.MaxAmount-d.total {
			return nil, errors.Annotatef(currency.ErrInvalidAmount, "name=%s amount=%d total overflow", s.Name, uint64(s.Amount))
		}
		d.amounts[name] += s.Amount
		d.total += s.Amount
	}
	return d, nil
}

func MustNew(catalog *currency.Catalog, entries ...Entry) *Drawer {
	d, err := New(catalog, entries...)
	if err != nil {
		panic("code error drawer.MustNew: " + errors.ErrorStack(err))
	}
	return d
}

func (self *Drawer) Catalog() *currency.Catalog { return self.catalog }

// Total is sum of all entries, precomputed.
func (self *Drawer) Total() currency.Amount { return self.total }

// Get returns available amount, 0 if denomination is absent.
func (self *Drawer) Get(name string) currency.Amount {
	return self.amounts[self.catalog.Canonical(name)]
}

// Slots lists present entries in catalog order.
func (self *Drawer) Slots() []Slot {
	result := make([]Slot, 0, len(self.amounts))
	_ = self.catalog.Each(func(d currency.Denomination) error {
		if a, ok := self.amounts[d.Name]; ok {
			result = append(result, Slot{Name: d.Name, Amount: a})
		}
		return nil
	})
	return result
}

// Withdraw returns new drawer with slots subtracted, receiver is unchanged.
func (self *Drawer) Withdraw(slots ...Slot) (*Drawer, error) {
	next := &Drawer{
		catalog: self.catalog,
		amounts: make(map[string]currency.Amount, len(self.amounts)),
		total:   self.total,
	}
	for k, v := range self.amounts {
		next.amounts[k] = v
	}
	for _, s := range slots {
		name := self.catalog.Canonical(s.Name)
		if !self.catalog.Has(name) {
			return nil, errors.Annotatef(ErrInvalidDenomination, "withdraw name=%s", s.Name)
		}
		have := next.amounts[name]
		if s.Amount > have {
			return nil, errors.Annotatef(ErrOverdraw, "name=%s want=%s have=%s",
				name, s.Amount.Format100I(), have.Format100I())
		}
		next.amounts[name] = have - s.Amount
		next.total -= s.Amount
	}
	return next, nil
}

func (self *Drawer) String() string {
	slots := self.Slots()
	parts := make([]string, 0, len(slots)+1)
	for _, s := range slots {
		parts = append(parts, fmt.Sprintf("%s:%s", s.Name, s.Amount.Format100I()))
	}
	parts = append(parts, fmt.Sprintf("total:%s", self.total.Format100I()))
	return strings.Join(parts, ",")
}
