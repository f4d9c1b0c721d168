package devices

import (
	"context"

	"github.com/tmcfarlane/goninja/internal/models"
	"github.com/tmcfarlane/goninja/pkg/units"
)

// RGBLED is a color LED actuator. Writes go straight to the hub; the local
// reading only updates when a later heartbeat observes the new state.
type RGBLED struct {
	*Device

	lastColor units.Color
	haveLast  bool
}

// SetColor writes the color to the hub as a hex string payload.
func (l *RGBLED) SetColor(ctx context.Context, color units.Color) error {
	req := models.WriteRequest{DA: color.String()}
	if err := l.client.WriteDevice(ctx, l.client.DeviceURL(l.guid), req); err != nil {
		return err
	}

	l.logger.Debug().Str("color", color.Hex()).Msg("Color write sent")
	return nil
}

// TurnOn restores the color remembered by the last TurnOff, defaulting to
// white when none was recorded yet.
func (l *RGBLED) TurnOn(ctx context.Context) error {
	color := l.lastColor
	if !l.haveLast {
		color = units.White
	}
	return l.SetColor(ctx, color)
}

// TurnOff remembers the currently observed color and writes black.
func (l *RGBLED) TurnOff(ctx context.Context) error {
	if current, ok := l.currentColor(); ok {
		l.lastColor = current
		l.haveLast = true
	}
	return l.SetColor(ctx, units.Black)
}

// currentColor decodes the latest heartbeat reading as a color.
func (l *RGBLED) currentColor() (units.Color, bool) {
	raw, ok := l.data.(string)
	if !ok {
		return units.Color{}, false
	}

	color, err := units.ParseColor(raw)
	if err != nil {
		return units.Color{}, false
	}
	return color, true
}
