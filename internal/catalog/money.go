package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"travelagg/pkg/currency"
)

// Money is an amount in paise. Arithmetic on Money is exact; the wire format
// is a decimal rupee number (e.g. 10000 or 8499.5).
type Money int64

// MaxMoney is the largest representable amount. Saturated arithmetic lands
// here, so it always compares as over budget.
const MaxMoney = Money(math.MaxInt64)

// ErrMoneyOutOfRange is returned when a decoded amount does not fit in Money.
var ErrMoneyOutOfRange = errors.New("money: out of range")

// Rupees converts a rupee amount, rounding to the nearest paisa. The caller
// must keep r within range; decoders go through parseRupees instead.
func Rupees(r float64) Money {
	return Money(math.Round(r * 100))
}

func parseRupees(f float64) (Money, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("money: %v is not finite", f)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
	paise := math.Round(f * 100)
	if paise >= float64(math.MaxInt64) || paise < float64(math.MinInt64) {
		return 0, fmt.Errorf("%w: %v", ErrMoneyOutOfRange, f)
	}
	return Money(paise), nil
}

func (m Money) Rupees() float64 {
	return float64(m) / 100
}

// Times multiplies by n, saturating at the int64 bounds instead of wrapping.
func (m Money) Times(n int) Money {
	if m == 0 || n == 0 {
		return 0
	}
	p := m * Money(n)
	if p/Money(n) != m || (n == -1 && m == math.MinInt64) {
		if (m < 0) != (n < 0) {
			return math.MinInt64
		}
		return MaxMoney
	}
	return p
}

// Plus adds o, saturating at the int64 bounds instead of wrapping.
func (m Money) Plus(o Money) Money {
	s := m + o
	switch {
	case o > 0 && s < m:
		return MaxMoney
	case o < 0 && s > m:
		return math.MinInt64
	}
	return s
}

func (m Money) String() string {
	return currency.FormatINR(int64(m))
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.decimal()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)

	f, err := json.Number(s).Float64()
	if err != nil {
		return fmt.Errorf("money: %q is not a number", s)
	}
	v, err := parseRupees(f)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	f, err := strconv.ParseFloat(strings.ReplaceAll(value.Value, "_", ""), 64)
	if err != nil {
		return fmt.Errorf("money: line %d: %q is not a number", value.Line, value.Value)
	}
	v, err := parseRupees(f)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = v
	return nil
}

// decimal renders the exact rupee value without float formatting.
func (m Money) decimal() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac := v/100, v%100
	if frac == 0 {
		return sign + strconv.FormatInt(whole, 10)
	}
	s := fmt.Sprintf("%s%d.%02d", sign, whole, frac)
	return strings.TrimSuffix(s, "0")
}
