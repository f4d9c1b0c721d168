package devices

import (
	"github.com/rs/zerolog"
	"github.com/tmcfarlane/goninja/internal/models"
	"github.com/tmcfarlane/goninja/pkg/api"
)

// Typed pairs specialized behavior (Button, RGBLED, the sensor wrappers)
// with the base device. *Device satisfies it directly for unspecialized
// types.
type Typed interface {
	Base() *Device
}

type registryEntry struct {
	codec Codec
	wrap  func(*Device) Typed
}

// registry maps hub-reported type strings to their specialization. Types the
// hub may report but that have no entry here fall back to the base device.
var registry = map[string]registryEntry{
	"temperature": {
		codec: temperatureCodec{},
		wrap:  func(d *Device) Typed { return &TemperatureSensor{Device: d} },
	},
	"humidity": {
		codec: passthroughCodec{},
		wrap:  func(d *Device) Typed { return &HumiditySensor{Device: d} },
	},
	"light": {
		codec: passthroughCodec{},
		wrap:  func(d *Device) Typed { return &LightSensor{Device: d} },
	},
	"orientation": {
		codec: passthroughCodec{},
		wrap:  func(d *Device) Typed { return &Accelerometer{Device: d} },
	},
	"button": {
		codec: passthroughCodec{},
		wrap:  func(d *Device) Typed { return &Button{Device: d} },
	},
	"rgbled": {
		codec: passthroughCodec{},
		wrap:  func(d *Device) Typed { return &RGBLED{Device: d} },
	},
}

// New builds a device from its hub descriptor, specializing on the reported
// type string. Unrecognized types get the base device with pass-through
// parsing.
func New(client api.Client, guid string, desc models.DeviceDescriptor, logger zerolog.Logger) Typed {
	entry, ok := registry[desc.DeviceType]
	if !ok {
		base := newDevice(client, guid, desc, passthroughCodec{}, logger)
		if desc.DeviceType != "" {
			base.logger.Warn().Msg("No specialization registered for device type, using base device")
		}
		return base
	}
	return entry.wrap(newDevice(client, guid, desc, entry.codec, logger))
}
