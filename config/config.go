// Package config reads till configuration in HCL.
// Multiple sources are applied in order, later values overwrite earlier,
// `include "name" {}` blocks pull more sources relative to the first file.
package config

import (
	"path/filepath"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/till/currency"
	"github.com/temoto/till/drawer"
	"github.com/temoto/till/helpers"
	"github.com/temoto/till/log2"
	tele_config "github.com/temoto/till/tele/config"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []Source `hcl:"include"`

	Log struct {
		Level string `hcl:"level"`
	} `hcl:"log"`

	Money struct {
		// ordered, strictly descending by value; empty means USD
		Denominations []Denomination `hcl:"denomination"`
		Drawer        []DrawerSlot   `hcl:"drawer"`
		// use Price(), decimal string is for decoding only
		XXX_Price   string `hcl:"price"`
		ApplyChange bool   `hcl:"apply_change"`
	} `hcl:"money"`

	Tele tele_config.Config `hcl:"tele"`
}

type Source struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

type Denomination struct {
	Name  string `hcl:"name,key"`
	Value int    `hcl:"value"` // minor units
}

type DrawerSlot struct {
	Name   string `hcl:"name,key"`
	Amount string `hcl:"amount"` // major units, decimal
}

func (c *Config) Catalog() (*currency.Catalog, error) {
	if len(c.Money.Denominations) == 0 {
		return currency.USD(), nil
	}
	ds := make([]currency.Denomination, len(c.Money.Denominations))
	for i, d := range c.Money.Denominations {
		if d.Value <= 0 {
			return nil, errors.NotValidf("config denomination=%s value=%d", d.Name, d.Value)
		}
		ds[i] = currency.Denomination{Name: d.Name, Value: currency.Amount(d.Value)}
	}
	cat, err := currency.NewCatalog(ds...)
	return cat, errors.Annotate(err, "config denomination")
}

// Drawer parses decimal amounts exactly, without float conversion.
func (c *Config) Drawer(catalog *currency.Catalog) (*drawer.Drawer, error) {
	slots := make([]drawer.Slot, 0, len(c.Money.Drawer))
	for _, s := range c.Money.Drawer {
		a, err := currency.ParseDecimal(s.Amount)
		if err != nil {
			return nil, errors.Annotatef(err, "config drawer=%s amount='%s'", s.Name, s.Amount)
		}
		slots = append(slots, drawer.Slot{Name: s.Name, Amount: a})
	}
	d, err := drawer.FromSlots(catalog, slots...)
	return d, errors.Annotate(err, "config drawer")
}

// Price is default sale price, 0 when not configured.
func (c *Config) Price() (currency.Amount, error) {
	if c.Money.XXX_Price == "" {
		return 0, nil
	}
	p, err := currency.ParseDecimal(c.Money.XXX_Price)
	return p, errors.Annotatef(err, "config price='%s'", c.Money.XXX_Price)
}

func (c *Config) LogLevel() (log2.Level, error) {
	return log2.ParseLevel(c.Log.Level)
}

func (c *Config) read(log *log2.Log, fs FullReader, source Source, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []Source
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, Source{Name: name}, &errs)
	}
	if len(errs) == 0 {
		// catch value errors at startup, not at first sale
		if _, err := c.LogLevel(); err != nil {
			errs = append(errs, errors.Annotate(err, "config log"))
		}
		if _, err := c.Price(); err != nil {
			errs = append(errs, err)
		}
		if cat, err := c.Catalog(); err != nil {
			errs = append(errs, err)
		} else if _, err := c.Drawer(cat); err != nil {
			errs = append(errs, err)
		}
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
