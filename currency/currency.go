package currency

import (
	"math"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/shopspring/decimal"
)

// Amount is integer counting lowest currency unit, e.g. $1.20 = 120
type Amount uint64

const MaxAmount Amount = math.MaxUint64 / 1000

var ErrInvalidAmount = errors.New("invalid amount")

// Format100I renders major units without trailing zeros: 6000 -> "60", 50 -> "0.5", 4 -> "0.04".
func (self Amount) Format100I() string {
	whole, frac := uint64(self)/100, uint64(self)%100
	s := strconv.FormatUint(whole, 10)
	switch {
	case frac == 0:
		return s
	case frac%10 == 0:
		return s + "." + strconv.FormatUint(frac/10, 10)
	case frac < 10:
		return s + ".0" + strconv.FormatUint(frac, 10)
	default:
		return s + "." + strconv.FormatUint(frac, 10)
	}
}

func (self Amount) FormatDollar() string { return "$" + self.Format100I() }

func (self Amount) String() string { return self.Format100I() }

// FromMajor converts decimal major units to Amount, rounding to the nearest minor unit.
func FromMajor(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, errors.Annotatef(ErrInvalidAmount, "value=%v", f)
	}
	// shortest float representation, so 2.05 is 2.05 not 2.0499999
	return fromDecimal(decimal.NewFromFloat(f), strconv.FormatFloat(f, 'g', -1, 64))
}

// ParseDecimal reads "20", "19.5", "$0.045" without going through float.
// Digits past cents are rounded half-up.
func ParseDecimal(s string) (Amount, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	s = strings.TrimPrefix(s, "$")
	if s == "" || s == "." {
		return 0, errors.Annotatef(ErrInvalidAmount, "input='%s'", orig)
	}

	// decimal.NewFromString also takes sign and exponent, till input is plain digits
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, errors.Annotatef(ErrInvalidAmount, "input='%s'", orig)
	}
	if intPart == "" {
		intPart = "0"
	}
	if fracPart != "" {
		intPart += "." + fracPart
	}
	d, err := decimal.NewFromString(intPart)
	if err != nil {
		return 0, errors.Annotatef(ErrInvalidAmount, "input='%s' err=%v", orig, err)
	}
	return fromDecimal(d, orig)
}

var maxDecimal = decimal.New(int64(MaxAmount), 0)

func fromDecimal(major decimal.Decimal, orig string) (Amount, error) {
	// Round is half away from zero, input is never negative
	minor := major.Shift(2).Round(0)
	if minor.IsNegative() {
		return 0, errors.Annotatef(ErrInvalidAmount, "input='%s'", orig)
	}
	if minor.GreaterThan(maxDecimal) {
		return 0, errors.Annotatef(ErrInvalidAmount, "input='%s' overflow", orig)
	}
	return Amount(minor.IntPart()), nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
