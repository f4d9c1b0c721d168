package units

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrBelowAbsoluteZero is returned when a construction, assignment or
// arithmetic operation would produce a temperature below 0 K. The operation
// is rejected atomically: the receiver keeps its previous value.
var ErrBelowAbsoluteZero = errors.New("temperature cannot be below 0 K")

// ErrDivisionByZero is returned when dividing a temperature by zero.
var ErrDivisionByZero = errors.New("temperature division by zero")

// Unit identifies a temperature scale.
type Unit int

const (
	Kelvin Unit = iota
	Celsius
	Fahrenheit
	Rankine
)

// String returns the conventional symbol for the unit.
func (u Unit) String() string {
	switch u {
	case Kelvin:
		return "K"
	case Celsius:
		return "C"
	case Fahrenheit:
		return "F"
	case Rankine:
		return "R"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// conversion holds the affine transform from Kelvin to a derived unit:
// derived = (k + shiftIn) * scale + shiftOut.
type conversion struct {
	scale    decimal.Decimal
	shiftIn  decimal.Decimal
	shiftOut decimal.Decimal
}

var conversions = [...]conversion{
	Kelvin:     {decimal.New(1, 0), decimal.Zero, decimal.Zero},
	Celsius:    {decimal.New(1, 0), decimal.Zero, decimal.New(-27315, -2)},
	Fahrenheit: {decimal.New(18, -1), decimal.New(-27315, -2), decimal.New(32, 0)},
	Rankine:    {decimal.New(18, -1), decimal.Zero, decimal.Zero},
}

// Temperature is an absolute temperature. It is stored canonically in Kelvin
// as a decimal and is never allowed below 0 K. Derived units are always
// recomputed from the Kelvin value, never cached.
type Temperature struct {
	k decimal.Decimal
}

// New creates a Temperature from a Kelvin value.
func New(k decimal.Decimal) (Temperature, error) {
	if k.IsNegative() {
		return Temperature{}, fmt.Errorf("%w: got %s K", ErrBelowAbsoluteZero, k)
	}
	return Temperature{k: k}, nil
}

// NewFromFloat creates a Temperature from a Kelvin value given as a float64.
func NewFromFloat(k float64) (Temperature, error) {
	return New(decimal.NewFromFloat(k))
}

// NewFromUnit creates a Temperature from a value in the given unit by
// inverting the unit's affine transform.
func NewFromUnit(u Unit, v decimal.Decimal) (Temperature, error) {
	k, err := toKelvin(u, v)
	if err != nil {
		return Temperature{}, err
	}
	return Temperature{k: k}, nil
}

func toKelvin(u Unit, v decimal.Decimal) (decimal.Decimal, error) {
	if int(u) < 0 || int(u) >= len(conversions) {
		return decimal.Zero, fmt.Errorf("unknown temperature unit %d", int(u))
	}
	eq := conversions[u]
	k := v.Sub(eq.shiftOut).Div(eq.scale).Sub(eq.shiftIn)
	if k.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s %s is %s K", ErrBelowAbsoluteZero, v, u, k)
	}
	return k, nil
}

// Kelvin returns the canonical Kelvin value.
func (t Temperature) Kelvin() decimal.Decimal { return t.k }

// Celsius returns the temperature in degrees Celsius.
func (t Temperature) Celsius() decimal.Decimal { return t.In(Celsius) }

// Fahrenheit returns the temperature in degrees Fahrenheit.
func (t Temperature) Fahrenheit() decimal.Decimal { return t.In(Fahrenheit) }

// Rankine returns the temperature in degrees Rankine.
func (t Temperature) Rankine() decimal.Decimal { return t.In(Rankine) }

// In returns the temperature converted to the given unit.
func (t Temperature) In(u Unit) decimal.Decimal {
	if int(u) < 0 || int(u) >= len(conversions) {
		return decimal.Zero
	}
	eq := conversions[u]
	return t.k.Add(eq.shiftIn).Mul(eq.scale).Add(eq.shiftOut)
}

// Set assigns the temperature from a value in the given unit. The resulting
// Kelvin value is validated before commit; on error the receiver is unchanged.
func (t *Temperature) Set(u Unit, v decimal.Decimal) error {
	k, err := toKelvin(u, v)
	if err != nil {
		return err
	}
	t.k = k
	return nil
}

// Add returns the sum of the two temperatures' Kelvin values.
func (t Temperature) Add(o Temperature) (Temperature, error) {
	return New(t.k.Add(o.k))
}

// Sub returns the difference of the two temperatures' Kelvin values. Order
// matters: t.Sub(o) fails with ErrBelowAbsoluteZero when o is warmer than t.
func (t Temperature) Sub(o Temperature) (Temperature, error) {
	return New(t.k.Sub(o.k))
}

// Mul returns the product of the two temperatures' Kelvin values.
func (t Temperature) Mul(o Temperature) (Temperature, error) {
	return New(t.k.Mul(o.k))
}

// Div returns the quotient of the two temperatures' Kelvin values.
func (t Temperature) Div(o Temperature) (Temperature, error) {
	if o.k.IsZero() {
		return Temperature{}, ErrDivisionByZero
	}
	return New(t.k.Div(o.k))
}

// AddKelvin returns the temperature shifted up by a bare Kelvin amount.
func (t Temperature) AddKelvin(v decimal.Decimal) (Temperature, error) {
	return New(t.k.Add(v))
}

// SubKelvin returns the temperature shifted down by a bare Kelvin amount.
func (t Temperature) SubKelvin(v decimal.Decimal) (Temperature, error) {
	return New(t.k.Sub(v))
}

// MulKelvin returns the temperature scaled by a bare factor.
func (t Temperature) MulKelvin(v decimal.Decimal) (Temperature, error) {
	return New(t.k.Mul(v))
}

// DivKelvin returns the temperature divided by a bare factor.
func (t Temperature) DivKelvin(v decimal.Decimal) (Temperature, error) {
	if v.IsZero() {
		return Temperature{}, ErrDivisionByZero
	}
	return New(t.k.Div(v))
}

// Cmp compares two temperatures by Kelvin value. It returns -1, 0 or 1.
func (t Temperature) Cmp(o Temperature) int { return t.k.Cmp(o.k) }

// CmpKelvin compares the temperature against a bare Kelvin value.
func (t Temperature) CmpKelvin(v decimal.Decimal) int { return t.k.Cmp(v) }

// Equal reports whether two temperatures have the same Kelvin value.
func (t Temperature) Equal(o Temperature) bool { return t.k.Equal(o.k) }

// Float64 returns the Kelvin value as a float64.
func (t Temperature) Float64() float64 {
	f, _ := t.k.Float64()
	return f
}

// Int64 returns the Kelvin value truncated to an integer.
func (t Temperature) Int64() int64 { return t.k.IntPart() }

// String renders the temperature as "<k> K" without trailing zeros.
func (t Temperature) String() string { return formatDecimal(t.k) + " K" }

// GoString renders the temperature as Temperature(<k>).
func (t Temperature) GoString() string { return "Temperature(" + formatDecimal(t.k) + ")" }

// formatDecimal trims the trailing zeros that fixed-precision division leaves
// behind, e.g. "373.1500000000000000" renders as "373.15".
func formatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
