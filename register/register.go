// Package register is the till front: validates tender, rings sales against
// one shared drawer, reports them to telemetry.
package register

import (
	"context"
	"sync"

	"github.com/juju/errors"
	"github.com/temoto/till/change"
	"github.com/temoto/till/config"
	"github.com/temoto/till/currency"
	"github.com/temoto/till/drawer"
	"github.com/temoto/till/log2"
	"github.com/temoto/till/tele"
)

const msgExact = "No change due - customer paid with exact cash"

var (
	ErrInvalidTender = errors.New("please enter a valid positive number")
	ErrNeedMoreMoney = errors.New("customer does not have enough money to purchase the item")
)

type Options struct {
	// remove dispensed change from drawer after successful sale
	ApplyChange bool
}

type Receipt struct {
	Price    currency.Amount
	Tendered currency.Amount
	Due      currency.Amount
	// exact payment skips change calculation, Result is zero
	Exact  bool
	Result change.Result
}

func (self Receipt) String() string {
	if self.Exact {
		return msgExact
	}
	return self.Result.String()
}

// Register serializes sales on one drawer.
// Change calculation only reads a snapshot, the lock covers read-compute-replace.
type Register struct {
	mu      sync.Mutex
	log     *log2.Log
	tele    tele.Teler
	options Options
	drawer  *drawer.Drawer
	price   currency.Amount
}

func New(log *log2.Log, teler tele.Teler, d *drawer.Drawer, opt Options) *Register {
	if d == nil {
		panic("code error register.New drawer=nil")
	}
	if teler == nil {
		teler = tele.Noop{}
	}
	return &Register{
		log:     log,
		tele:    teler,
		options: opt,
		drawer:  d,
	}
}

func FromConfig(log *log2.Log, teler tele.Teler, c *config.Config) (*Register, error) {
	cat, err := c.Catalog()
	if err != nil {
		return nil, err
	}
	d, err := c.Drawer(cat)
	if err != nil {
		return nil, err
	}
	price, err := c.Price()
	if err != nil {
		return nil, err
	}
	r := New(log, teler, d, Options{ApplyChange: c.Money.ApplyChange})
	r.price = price
	return r, nil
}

func (self *Register) Drawer() *drawer.Drawer {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.drawer
}

func (self *Register) SetDrawer(d *drawer.Drawer) {
	if d == nil {
		panic("code error register.SetDrawer drawer=nil")
	}
	self.mu.Lock()
	self.drawer = d
	self.mu.Unlock()
	self.log.Infof("register drawer=%s", d.String())
}

// Price is default price from config or last SetPrice.
func (self *Register) Price() currency.Amount {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.price
}

func (self *Register) SetPrice(p currency.Amount) {
	self.mu.Lock()
	self.price = p
	self.mu.Unlock()
}

// SaleText accepts cash as typed by cashier, e.g. "20", "$19.5".
func (self *Register) SaleText(ctx context.Context, price currency.Amount, tenderText string) (Receipt, error) {
	tendered, err := currency.ParseDecimal(tenderText)
	if err != nil {
		return Receipt{}, errors.Annotatef(ErrInvalidTender, "cash='%s'", tenderText)
	}
	return self.Sale(ctx, price, tendered)
}

func (self *Register) Sale(ctx context.Context, price, tendered currency.Amount) (Receipt, error) {
	receipt, _, err := self.sale(ctx, price, tendered)
	return receipt, err
}

func (self *Register) sale(ctx context.Context, price, tendered currency.Amount) (Receipt, *tele.Sale, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, nil, errors.Annotate(err, "register")
	}
	if tendered == 0 {
		return Receipt{}, nil, ErrInvalidTender
	}
	if tendered < price {
		return Receipt{}, nil, errors.Annotatef(ErrNeedMoreMoney, "price=%s cash=%s", price.Format100I(), tendered.Format100I())
	}
	receipt := Receipt{
		Price:    price,
		Tendered: tendered,
		Due:      tendered - price,
	}

	self.mu.Lock()
	defer self.mu.Unlock()

	if receipt.Due == 0 {
		receipt.Exact = true
	} else {
		var err error
		receipt.Result, err = change.Compute(price, tendered, self.drawer)
		if err != nil {
			return Receipt{}, nil, errors.Annotate(err, "register")
		}
		if receipt.Result.OK() && self.options.ApplyChange {
			next, err := self.drawer.Withdraw(receipt.Result.Slots()...)
			if err != nil {
				// calculator never returns more than available
				err = errors.Annotatef(err, "code error register withdraw change=%s", receipt.Result.String())
				self.log.Error(err)
				return Receipt{}, nil, err
			}
			self.drawer = next
		}
	}

	self.log.Infof("sale price=%s cash=%s %s", price.Format100I(), tendered.Format100I(), receipt.String())
	ts := self.teleSale(receipt)
	self.tele.Sale(ts)
	return receipt, ts, nil
}

// HandleCommand runs remote sale, fits tele.CommandFunc.
func (self *Register) HandleCommand(ctx context.Context, cmd *tele.Command) *tele.Response {
	price := currency.Amount(cmd.Price)
	tendered := currency.Amount(cmd.Tendered)
	receipt, ts, err := self.sale(ctx, price, tendered)
	if err != nil {
		return &tele.Response{Error: err.Error()}
	}
	return &tele.Response{Sale: ts, Text: receipt.String()}
}

// teleSale requires self.mu held.
func (self *Register) teleSale(receipt Receipt) *tele.Sale {
	s := &tele.Sale{
		Price:       uint64(receipt.Price),
		Tendered:    uint64(receipt.Tendered),
		Exact:       receipt.Exact,
		Status:      string(receipt.Result.Status),
		DrawerTotal: uint64(self.drawer.Total()),
	}
	if len(receipt.Result.Change) != 0 {
		s.Items = make([]*tele.Sale_Item, len(receipt.Result.Change))
		for i, item := range receipt.Result.Change {
			s.Items[i] = &tele.Sale_Item{Name: item.Name, Amount: uint64(item.Amount)}
		}
	}
	return s
}
