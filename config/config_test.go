package config

import (
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/till/currency"
	"github.com/temoto/till/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		check     func(testing.TB, *Config)
		expectErr string
	}
	cases := []Case{
		{"empty", "", func(t testing.TB, c *Config) {
			cat, err := c.Catalog()
			require.NoError(t, err)
			assert.Same(t, currency.USD(), cat)
			d, err := c.Drawer(cat)
			require.NoError(t, err)
			assert.Equal(t, currency.Amount(0), d.Total())
			p, err := c.Price()
			require.NoError(t, err)
			assert.Equal(t, currency.Amount(0), p)
			level, err := c.LogLevel()
			require.NoError(t, err)
			assert.Equal(t, log2.LInfo, level)
			assert.False(t, c.Tele.Enabled)
		}, ""},

		{"money", `
money {
	drawer "PENNY" { amount = "1.01" }
	drawer "ONE HUNDRED" { amount = "100" }
	drawer "QUARTER" { amount = "4.25" }
	price = "19.50"
	apply_change = true
}`,
			func(t testing.TB, c *Config) {
				cat, err := c.Catalog()
				require.NoError(t, err)
				d, err := c.Drawer(cat)
				require.NoError(t, err)
				assert.Equal(t, currency.Amount(101), d.Get("PENNY"))
				assert.Equal(t, currency.Amount(10000), d.Get("ONE_HUNDRED"))
				assert.Equal(t, currency.Amount(10526), d.Total())
				p, err := c.Price()
				require.NoError(t, err)
				assert.Equal(t, currency.Amount(1950), p)
				assert.True(t, c.Money.ApplyChange)
			}, ""},

		{"custom-denominations", `
money {
	denomination "TEN" { value = 10 }
	denomination "SEVEN" { value = 7 }
	denomination "ONE" { value = 1 }
	drawer "SEVEN" { amount = "0.14" }
}`,
			func(t testing.TB, c *Config) {
				cat, err := c.Catalog()
				require.NoError(t, err)
				assert.Equal(t, []string{"TEN", "SEVEN", "ONE"}, cat.Names())
				d, err := c.Drawer(cat)
				require.NoError(t, err)
				assert.Equal(t, currency.Amount(14), d.Total())
			}, ""},

		{"tele", `
tele {
	enable = true
	till_id = 7
	mqtt_broker = "tcp://localhost:1883"
	persist_path = "/var/lib/till/tele"
	retry_delay_sec = 3
}
log { level = "debug" }`,
			func(t testing.TB, c *Config) {
				assert.True(t, c.Tele.Enabled)
				assert.Equal(t, 7, c.Tele.TillId)
				assert.Equal(t, "tcp://localhost:1883", c.Tele.MqttBroker)
				assert.Equal(t, "/var/lib/till/tele", c.Tele.PersistPath)
				assert.Equal(t, 3, c.Tele.RetryDelaySec)
				level, err := c.LogLevel()
				require.NoError(t, err)
				assert.Equal(t, log2.LDebug, level)
			}, ""},

		{"include-normalize", `
money { price = "1" }
include "./empty" {}`,
			nil, ""},

		{"include-optional", `
include "price-7" {}
include "non-exist" { optional = true }`,
			func(t testing.TB, c *Config) {
				p, err := c.Price()
				require.NoError(t, err)
				assert.Equal(t, currency.Amount(700), p)
			}, ""},

		{"include-overwrites", `
money { price = "1" }
include "price-7" {}`,
			func(t testing.TB, c *Config) {
				assert.Equal(t, "7", c.Money.XXX_Price)
			}, ""},

		{"error-syntax", `hello`, nil, "key 'hello' expected start of object"},
		{"error-include-loop", `include "include-loop" {}`, nil, "config include loop: from=include-loop include=include-loop"},
		{"error-include-required", `include "non-exist" {}`, nil, "config required name=non-exist"},
		{"error-log-level", `log { level = "loud" }`, nil, "log level='loud' not valid"},
		{"error-price", `money { price = "free" }`, nil, "config price='free'"},
		{"error-drawer-amount", `money { drawer "DIME" { amount = "-1" } }`, nil, "config drawer=DIME amount='-1'"},
		{"error-drawer-name", `money { drawer "EURO" { amount = "1" } }`, nil, "name=EURO"},
		{"error-denomination-order", `
money {
	denomination "ONE" { value = 1 }
	denomination "TEN" { value = 10 }
}`, nil, "config denomination"},
		{"error-denomination-zero", `money { denomination "NIL" { value = 0 } }`, nil, "config denomination=NIL value=0"},
	}
	mkCheck := func(c Case) func(*testing.T) {
		return func(t *testing.T) {
			t.Parallel()
			log := log2.NewTest(t, log2.LDebug)
			fs := NewMockFullReader(map[string]string{
				"test-inline":  c.input,
				"empty":        "",
				"price-7":      `money{price="7"}`,
				"include-loop": `include "include-loop" {}`,
			})
			cfg, err := ReadConfig(log, fs, "test-inline")
			if c.expectErr == "" {
				if err != nil {
					t.Fatalf("error expected=nil actual='%v'", errors.ErrorStack(err))
				}
				if c.check != nil {
					c.check(t, cfg)
				}
			} else {
				require.Error(t, err)
				if !strings.Contains(err.Error(), c.expectErr) {
					t.Fatalf("error expected='%s' actual='%v'", c.expectErr, err)
				}
			}
		}
	}
	for _, c := range cases {
		t.Run(c.name, mkCheck(c))
	}
}

func TestFunctionalBundled(t *testing.T) {
	// not Parallel
	t.Logf("this test needs OS open|read|stat access to file `../till.hcl`")

	log := log2.NewTest(t, log2.LDebug)
	c := MustReadConfig(log, NewOsFullReader(), "../till.hcl")
	cat, err := c.Catalog()
	require.NoError(t, err)
	d, err := c.Drawer(cat)
	require.NoError(t, err)
	assert.Equal(t, currency.Amount(33541), d.Total())
}
