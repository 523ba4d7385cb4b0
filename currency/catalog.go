package currency

import (
	"strings"

	"github.com/juju/errors"
)

// Denomination is value of one coin or bill
type Denomination struct {
	Name  string
	Value Amount
}

var (
	ErrCatalogEmpty = errors.New("catalog is empty")
	ErrCatalogOrder = errors.New("catalog must be strictly descending by value")
)

// Catalog is fixed ordered list of denominations, largest value first.
// Change calculation walks it in this order, so the order is part of the contract.
// Catalog is immutable after NewCatalog.
type Catalog struct {
	list  []Denomination
	index map[string]int
}

func NewCatalog(ds ...Denomination) (*Catalog, error) {
	if len(ds) == 0 {
		return nil, ErrCatalogEmpty
	}
	c := &Catalog{
		list:  make([]Denomination, len(ds)),
		index: make(map[string]int, len(ds)),
	}
	for i, d := range ds {
		if d.Name == "" {
			return nil, errors.Errorf("catalog[%d] empty name", i)
		}
		if d.Value == 0 {
			return nil, errors.Errorf("catalog[%d] name=%s zero value", i, d.Name)
		}
		if _, ok := c.index[d.Name]; ok {
			return nil, errors.Errorf("catalog duplicate name=%s", d.Name)
		}
		if i > 0 && d.Value >= ds[i-1].Value {
			return nil, errors.Annotatef(ErrCatalogOrder, "%s=%d after %s=%d", d.Name, d.Value, ds[i-1].Name, ds[i-1].Value)
		}
		c.list[i] = d
		c.index[d.Name] = i
	}
	return c, nil
}

func MustCatalog(ds ...Denomination) *Catalog {
	c, err := NewCatalog(ds...)
	if err != nil {
		panic("code error MustCatalog: " + err.Error())
	}
	return c
}

var usd = MustCatalog(
	Denomination{"ONE_HUNDRED", 10000},
	Denomination{"TWENTY", 2000},
	Denomination{"TEN", 1000},
	Denomination{"FIVE", 500},
	Denomination{"ONE", 100},
	Denomination{"QUARTER", 25},
	Denomination{"DIME", 10},
	Denomination{"NICKEL", 5},
	Denomination{"PENNY", 1},
)

// USD is the standard US till: bills up to $100 and coins down to a penny.
func USD() *Catalog { return usd }

func (self *Catalog) Len() int               { return len(self.list) }
func (self *Catalog) At(i int) Denomination  { return self.list[i] }
func (self *Catalog) Smallest() Denomination { return self.list[len(self.list)-1] }

func (self *Catalog) Has(name string) bool {
	_, ok := self.index[self.Canonical(name)]
	return ok
}

// Canonical accepts "ONE HUNDRED" as alias for "ONE_HUNDRED".
func (self *Catalog) Canonical(name string) string {
	if _, ok := self.index[name]; ok {
		return name
	}
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

func (self *Catalog) Value(name string) (Amount, bool) {
	i, ok := self.index[self.Canonical(name)]
	if !ok {
		return 0, false
	}
	return self.list[i].Value, true
}

func (self *Catalog) Names() []string {
	names := make([]string, len(self.list))
	for i, d := range self.list {
		names[i] = d.Name
	}
	return names
}

// Each walks denominations in descending value order.
func (self *Catalog) Each(f func(d Denomination) error) error {
	for _, d := range self.list {
		if err := f(d); err != nil {
			return err
		}
	}
	return nil
}
