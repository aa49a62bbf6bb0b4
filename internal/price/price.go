// Package price handles price values from prediction market APIs
// without losing precision.
package price

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Price int64

var _ json.Unmarshaler = (*Price)(nil)

const PriceScale int64 = 1_000_000

// One is the price of a certain outcome.
const One = Price(PriceScale)

var ErrInvalidPrice = errors.New("invalid price")

// Parse reads a non-negative decimal such as "0.125", "1" or "1e-05".
// Digits beyond the sixth decimal place are truncated.
func Parse(s string) (Price, error) {
	if strings.ContainsAny(s, "eE") {
		return parseExponent(s)
	}

	data := []byte(s)
	if len(data) == 0 || data[0] == '.' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}

	var res int64
	i := 0

	for i < len(data) && data[i] != '.' {
		if !isDigit(data[i]) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
		}
		if res > (math.MaxInt64-9*PriceScale)/10 {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidPrice, s)
		}
		res = res*10 + int64(data[i]-'0')*PriceScale
		i++
	}

	if i < len(data) && data[i] == '.' {
		i++
		if i == len(data) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
		}
		mult := PriceScale
		for i < len(data) {
			if !isDigit(data[i]) {
				return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
			}
			mult /= 10
			res += int64(data[i]-'0') * mult
			i++
		}
	}

	return Price(res), nil
}

var maxPrice = decimal.NewFromInt(math.MaxInt64)

func parseExponent(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() || !isDigit(s[0]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	scaled := d.Shift(6).Truncate(0)
	if scaled.GreaterThan(maxPrice) {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidPrice, s)
	}
	return Price(scaled.IntPart()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	if len(data) > 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	// Else we assume that it is a raw number.

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}

// FromFloat converts f to a Price, rounding to the nearest micro unit.
func FromFloat(f float64) Price {
	return Price(math.Round(f * float64(PriceScale)))
}

func (p Price) Float64() float64 {
	return float64(p) / float64(PriceScale)
}

// Percent returns the price as a whole percentage, truncated.
func (p Price) Percent() int64 {
	return int64(p) * 100 / PriceScale
}

func (p Price) String() string {
	return fmt.Sprintf("%d.%06d", int64(p)/PriceScale, int64(p)%PriceScale)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
