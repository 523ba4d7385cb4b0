package currency

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     []Denomination
		expectErr string
	}
	cases := []Case{
		{"ok", []Denomination{{"TEN", 10}, {"FIVE", 5}, {"ONE", 1}}, ""},
		{"single", []Denomination{{"ONE", 1}}, ""},
		{"empty", nil, "catalog is empty"},
		{"ascending", []Denomination{{"ONE", 1}, {"TEN", 10}}, "strictly descending"},
		{"equal", []Denomination{{"A", 5}, {"B", 5}}, "strictly descending"},
		{"zero", []Denomination{{"TEN", 10}, {"NONE", 0}}, "zero value"},
		{"no-name", []Denomination{{"", 10}}, "empty name"},
		{"duplicate", []Denomination{{"X", 10}, {"X", 5}}, "duplicate name=X"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			cat, err := NewCatalog(c.input...)
			if c.expectErr == "" {
				require.NoError(t, err)
				assert.Equal(t, len(c.input), cat.Len())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.expectErr)
		})
	}

	_, err := NewCatalog(Denomination{"ONE", 1}, Denomination{"TEN", 10})
	assert.Equal(t, ErrCatalogOrder, errors.Cause(err))
}

func TestUSD(t *testing.T) {
	t.Parallel()
	cat := USD()
	require.Equal(t, 9, cat.Len())
	assert.Equal(t, []string{"ONE_HUNDRED", "TWENTY", "TEN", "FIVE", "ONE", "QUARTER", "DIME", "NICKEL", "PENNY"}, cat.Names())
	assert.Equal(t, Denomination{"PENNY", 1}, cat.Smallest())

	v, ok := cat.Value("QUARTER")
	assert.True(t, ok)
	assert.Equal(t, Amount(25), v)
	v, ok = cat.Value("ONE HUNDRED")
	assert.True(t, ok)
	assert.Equal(t, Amount(10000), v)
	_, ok = cat.Value("DOUBLOON")
	assert.False(t, ok)

	prev := MaxAmount
	count := 0
	require.NoError(t, cat.Each(func(d Denomination) error {
		assert.Less(t, uint64(d.Value), uint64(prev))
		prev = d.Value
		count++
		return nil
	}))
	assert.Equal(t, cat.Len(), count)

	stop := errors.New("stop")
	assert.Equal(t, stop, cat.Each(func(Denomination) error { return stop }))
}
