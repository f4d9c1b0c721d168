package devices

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tmcfarlane/goninja/pkg/units"
)

// TemperatureSensor parses raw Celsius readings into units.Temperature.
type TemperatureSensor struct {
	*Device
}

// Temperature returns the latest reading as a typed value. ok is false
// before the first successful poll.
func (s *TemperatureSensor) Temperature() (units.Temperature, bool) {
	t, ok := s.data.(units.Temperature)
	return t, ok
}

// temperatureCodec converts the hub's bare Celsius number to a Temperature
// and exposes the Kelvin magnitude as the JSON-safe external form.
type temperatureCodec struct{}

func (temperatureCodec) Parse(raw any) (any, error) {
	celsius, err := decimalFromRaw(raw)
	if err != nil {
		return nil, err
	}
	return units.NewFromUnit(units.Celsius, celsius)
}

func (temperatureCodec) External(value any) any {
	if t, ok := value.(units.Temperature); ok {
		return t.Float64()
	}
	return value
}

// HumiditySensor reports relative humidity; readings pass through unchanged.
type HumiditySensor struct {
	*Device
}

// LightSensor reports ambient light level; readings pass through unchanged.
type LightSensor struct {
	*Device
}

// Accelerometer reports orientation; readings pass through unchanged.
type Accelerometer struct {
	*Device
}

// Button is a push button. The hub reports 0 while pushed.
type Button struct {
	*Device
}

// IsPushed reports whether the latest reading equals zero.
func (b *Button) IsPushed() bool {
	n, err := decimalFromRaw(b.data)
	return err == nil && n.IsZero()
}

// decimalFromRaw converts the numeric forms a decoded hub payload can take.
func decimalFromRaw(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.New(int64(v), 0), nil
	case int64:
		return decimal.New(v, 0), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(v)
	default:
		return decimal.Zero, fmt.Errorf("unsupported raw value %T", raw)
	}
}
