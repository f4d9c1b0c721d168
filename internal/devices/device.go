package devices

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmcfarlane/goninja/internal/models"
	"github.com/tmcfarlane/goninja/pkg/api"
	"github.com/tmcfarlane/goninja/pkg/units"
)

// Codec converts between the hub's raw heartbeat payload and the typed value
// a device stores, and between that value and a JSON-safe external form.
// The base codec is a pass-through on both sides.
type Codec interface {
	Parse(raw any) (any, error)
	External(value any) any
}

type passthroughCodec struct{}

func (passthroughCodec) Parse(raw any) (any, error) { return raw, nil }
func (passthroughCodec) External(value any) any     { return value }

// Device holds one hub device's identity, static metadata and latest known
// reading, and notifies subscribers of polls and value changes. Methods are
// not safe for concurrent use; callers polling from multiple goroutines must
// serialize access per device.
type Device struct {
	guid       string
	deviceType string
	name       string
	isSensor   bool
	isActuator bool

	client api.Client
	codec  Codec
	bus    *eventBus
	logger zerolog.Logger

	data          any
	lastHeartbeat time.Time
	lastRead      time.Time
}

// newDevice builds the base device from a hub descriptor. The codec comes
// from the type registry; callers go through New to get the specialized
// wrapper as well.
func newDevice(client api.Client, guid string, desc models.DeviceDescriptor, codec Codec, logger zerolog.Logger) *Device {
	return &Device{
		guid:       guid,
		deviceType: desc.DeviceType,
		name:       desc.ShortName,
		isSensor:   desc.IsSensor == 1,
		isActuator: desc.IsActuator == 1,
		client:     client,
		codec:      codec,
		bus:        newEventBus(),
		logger:     logger.With().Str("guid", guid).Str("device_type", desc.DeviceType).Logger(),
	}
}

// GUID returns the device's stable hub-assigned identifier.
func (d *Device) GUID() string { return d.guid }

// Type returns the hub-reported device type string, empty when unknown.
func (d *Device) Type() string { return d.deviceType }

// Name returns the hub-reported short name, empty when unknown.
func (d *Device) Name() string { return d.name }

// IsSensor reports whether the hub flags the device as a sensor.
func (d *Device) IsSensor() bool { return d.isSensor }

// IsActuator reports whether the hub flags the device as an actuator.
func (d *Device) IsActuator() bool { return d.isActuator }

// Data returns the latest parsed reading, nil before the first successful poll.
func (d *Device) Data() any { return d.data }

// LastHeartbeat returns the wall-clock time of the last successful poll,
// zero before the first one.
func (d *Device) LastHeartbeat() time.Time { return d.lastHeartbeat }

// LastRead returns the server-supplied reading time, zero before the first
// successful poll.
func (d *Device) LastRead() time.Time { return d.lastRead }

// Base returns the device itself; it makes *Device satisfy Typed so
// unspecialized devices can live alongside Button and RGBLED wrappers.
func (d *Device) Base() *Device { return d }

// String renders the device as Device("<name>").
func (d *Device) String() string {
	return fmt.Sprintf("Device(%q)", d.name)
}

// Subscribe registers a handler for an event kind. Handlers run
// synchronously in registration order; registering the same handler twice
// fires it twice.
func (d *Device) Subscribe(kind EventKind, handler Handler) Subscription {
	return d.bus.subscribe(kind, handler)
}

// Unsubscribe removes a previously registered handler. It reports whether
// the subscription was found.
func (d *Device) Unsubscribe(sub Subscription) bool {
	return d.bus.unsubscribe(sub)
}

// OnHeartbeat is shorthand for Subscribe(EventHeartbeat, handler).
func (d *Device) OnHeartbeat(handler Handler) Subscription {
	return d.Subscribe(EventHeartbeat, handler)
}

// Heartbeat polls the hub once and updates the stored reading. On a
// successful envelope it stamps the heartbeat and read times, stores the
// parsed value, fires EventHeartbeat and, when the value changed,
// EventChange. A non-zero envelope id means no new data: nothing mutates, no
// events fire, and the previous pair comes back without error. Transport,
// parse and handler failures are returned.
func (d *Device) Heartbeat(ctx context.Context) (time.Time, any, error) {
	return d.heartbeat(ctx, false)
}

// HeartbeatSilent polls like Heartbeat but suppresses both events.
func (d *Device) HeartbeatSilent(ctx context.Context) (time.Time, any, error) {
	return d.heartbeat(ctx, true)
}

func (d *Device) heartbeat(ctx context.Context, silent bool) (time.Time, any, error) {
	resp, err := d.client.GetDeviceHeartbeat(ctx, d.guid)
	if err != nil {
		return d.lastRead, d.data, err
	}

	if resp.ID != 0 {
		// The hub reports "no new data yet" this way for transient misses,
		// so it is not an error; persistent non-zero ids are still worth
		// spotting in logs.
		d.logger.Debug().Int("response_id", resp.ID).Msg("Heartbeat returned no new data")
		return d.lastRead, d.data, nil
	}

	parsed, err := d.codec.Parse(resp.Data.DA)
	if err != nil {
		return d.lastRead, d.data, fmt.Errorf("failed to parse heartbeat data: %w", err)
	}

	previous := deepCopyValue(d.data)
	d.lastHeartbeat = time.Now().UTC()
	d.data = parsed
	d.lastRead = time.UnixMilli(resp.Data.Timestamp).UTC()

	if !silent {
		if err := d.bus.publish(Event{Kind: EventHeartbeat, Device: d, Data: d.data}); err != nil {
			return d.lastRead, d.data, err
		}
		if !valueEqual(d.data, previous) {
			if err := d.bus.publish(Event{Kind: EventChange, Device: d, Data: d.data, Previous: previous}); err != nil {
				return d.lastRead, d.data, err
			}
		}
	}

	return d.lastRead, d.data, nil
}

// Snapshot returns a point-in-time view of the device. With forJSON the
// reading is routed through the codec's external hook so the result encodes
// cleanly.
func (d *Device) Snapshot(forJSON bool) models.DeviceSnapshot {
	data := d.data
	if forJSON {
		data = d.codec.External(data)
	}
	return models.DeviceSnapshot{
		GUID:          d.guid,
		Type:          d.deviceType,
		Name:          d.name,
		IsSensor:      d.isSensor,
		IsActuator:    d.isActuator,
		Data:          data,
		LastHeartbeat: timeOrNil(d.lastHeartbeat),
		LastRead:      timeOrNil(d.lastRead),
	}
}

// Poll blocks, heartbeating every period until the context is cancelled or a
// heartbeat fails. The first poll happens immediately.
func (d *Device) Poll(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		if _, _, err := d.Heartbeat(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// valueEqual compares readings by value. Temperatures compare by Kelvin
// magnitude so representation differences from decimal division never count
// as a change.
func valueEqual(a, b any) bool {
	if at, ok := a.(units.Temperature); ok {
		bt, ok := b.(units.Temperature)
		return ok && at.Equal(bt)
	}
	return reflect.DeepEqual(a, b)
}

// deepCopyValue clones a reading so the previous-data snapshot never aliases
// the new one. Hub payloads decode to scalars, strings, []any and
// map[string]any; anything else is a value type and copies by assignment.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		cpy := make(map[string]any, len(val))
		for k, item := range val {
			cpy[k] = deepCopyValue(item)
		}
		return cpy
	case []any:
		cpy := make([]any, len(val))
		for i, item := range val {
			cpy[i] = deepCopyValue(item)
		}
		return cpy
	default:
		return val
	}
}
