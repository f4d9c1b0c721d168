package devices

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmcfarlane/goninja/internal/models"
	"github.com/tmcfarlane/goninja/pkg/units"
)

// TestTemperatureSensor_Parse checks that raw Celsius readings become typed
// temperatures.
func TestTemperatureSensor_Parse(t *testing.T) {
	// Setup
	mockClient := new(MockClient)
	mockClient.On("GetDeviceHeartbeat", mock.Anything, "guid-t").
		Return(heartbeatResponse(0, 21.5, int64(1700000000000)), nil)

	desc := models.DeviceDescriptor{DeviceType: "temperature", ShortName: "Bedroom", IsSensor: 1}
	sensor, ok := New(mockClient, "guid-t", desc, zerolog.Nop()).(*TemperatureSensor)
	require.True(t, ok)

	// Execute
	_, data, err := sensor.Heartbeat(context.Background())

	// Assert
	require.NoError(t, err)
	reading, ok := data.(units.Temperature)
	require.True(t, ok)
	assert.True(t, reading.Celsius().Equal(decimal.RequireFromString("21.5")))

	typed, ok := sensor.Temperature()
	require.True(t, ok)
	assert.True(t, typed.Equal(reading))
}

// TestTemperatureSensor_Parse_BelowAbsoluteZero checks that an impossible
// reading is rejected without mutating the stored value.
func TestTemperatureSensor_Parse_BelowAbsoluteZero(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("GetDeviceHeartbeat", mock.Anything, "guid-t").
		Return(heartbeatResponse(0, -400.0, int64(1)), nil)

	desc := models.DeviceDescriptor{DeviceType: "temperature", IsSensor: 1}
	sensor := New(mockClient, "guid-t", desc, zerolog.Nop()).(*TemperatureSensor)

	_, _, err := sensor.Heartbeat(context.Background())

	assert.ErrorIs(t, err, units.ErrBelowAbsoluteZero)
	assert.Nil(t, sensor.Data())
	assert.True(t, sensor.LastRead().IsZero())
}

// TestTemperatureSensor_Snapshot_ForJSON checks that the JSON form of the
// reading is the bare Kelvin float, not the decimal value type.
func TestTemperatureSensor_Snapshot_ForJSON(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("GetDeviceHeartbeat", mock.Anything, "guid-t").
		Return(heartbeatResponse(0, 21.5, int64(1)), nil)

	desc := models.DeviceDescriptor{DeviceType: "temperature", IsSensor: 1}
	sensor := New(mockClient, "guid-t", desc, zerolog.Nop()).(*TemperatureSensor)

	_, _, err := sensor.Heartbeat(context.Background())
	require.NoError(t, err)

	snap := sensor.Snapshot(true)

	kelvin, ok := snap.Data.(float64)
	require.True(t, ok, "forJSON data must be a plain float, got %T", snap.Data)
	assert.InDelta(t, 294.65, kelvin, 1e-9)

	// Without forJSON the typed value comes through unchanged.
	raw := sensor.Snapshot(false)
	_, ok = raw.Data.(units.Temperature)
	assert.True(t, ok)
}

// TestTemperatureSensor_ChangeByValue checks that equal readings with
// different decimal representations do not fire EventChange.
func TestTemperatureSensor_ChangeByValue(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("GetDeviceHeartbeat", mock.Anything, "guid-t").
		Return(heartbeatResponse(0, 21.5, int64(1)), nil).Once()
	mockClient.On("GetDeviceHeartbeat", mock.Anything, "guid-t").
		Return(heartbeatResponse(0, "21.50", int64(2)), nil).Once()

	desc := models.DeviceDescriptor{DeviceType: "temperature", IsSensor: 1}
	sensor := New(mockClient, "guid-t", desc, zerolog.Nop()).(*TemperatureSensor)

	changes := 0
	sensor.Subscribe(EventChange, func(Event) error { changes++; return nil })

	ctx := context.Background()
	_, _, err := sensor.Heartbeat(ctx)
	require.NoError(t, err)
	_, _, err = sensor.Heartbeat(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, changes, "only the nil -> 21.5 transition is a change")
}

// TestButton_IsPushed checks the zero-means-pushed contract.
func TestButton_IsPushed(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("GetDeviceHeartbeat", mock.Anything, "guid-b").
		Return(heartbeatResponse(0, 0.0, int64(1)), nil).Once()
	mockClient.On("GetDeviceHeartbeat", mock.Anything, "guid-b").
		Return(heartbeatResponse(0, 1.0, int64(2)), nil).Once()

	desc := models.DeviceDescriptor{DeviceType: "button", IsSensor: 1}
	button, ok := New(mockClient, "guid-b", desc, zerolog.Nop()).(*Button)
	require.True(t, ok)

	// Never polled: not pushed.
	assert.False(t, button.IsPushed())

	ctx := context.Background()
	_, _, err := button.Heartbeat(ctx)
	require.NoError(t, err)
	assert.True(t, button.IsPushed())

	_, _, err = button.Heartbeat(ctx)
	require.NoError(t, err)
	assert.False(t, button.IsPushed())
}

// TestRegistry_KnownTypes checks the specialization selected per type string.
func TestRegistry_KnownTypes(t *testing.T) {
	mockClient := new(MockClient)

	cases := []struct {
		deviceType string
		check      func(Typed) bool
	}{
		{"temperature", func(d Typed) bool { _, ok := d.(*TemperatureSensor); return ok }},
		{"humidity", func(d Typed) bool { _, ok := d.(*HumiditySensor); return ok }},
		{"light", func(d Typed) bool { _, ok := d.(*LightSensor); return ok }},
		{"orientation", func(d Typed) bool { _, ok := d.(*Accelerometer); return ok }},
		{"button", func(d Typed) bool { _, ok := d.(*Button); return ok }},
		{"rgbled", func(d Typed) bool { _, ok := d.(*RGBLED); return ok }},
	}

	for _, tc := range cases {
		desc := models.DeviceDescriptor{DeviceType: tc.deviceType}
		built := New(mockClient, "guid-x", desc, zerolog.Nop())
		assert.True(t, tc.check(built), "type %q", tc.deviceType)
	}
}

// TestRegistry_UnknownType_PassThrough checks the base-device fallback and
// that its readings pass through unparsed.
func TestRegistry_UnknownType_PassThrough(t *testing.T) {
	mockClient := new(MockClient)
	mockClient.On("GetDeviceHeartbeat", mock.Anything, "guid-u").
		Return(heartbeatResponse(0, 55.0, int64(1)), nil)

	desc := models.DeviceDescriptor{DeviceType: "co2", IsSensor: 1}
	built := New(mockClient, "guid-u", desc, zerolog.Nop())

	base, ok := built.(*Device)
	require.True(t, ok, "unknown types fall back to the base device")

	_, data, err := base.Heartbeat(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 55.0, data)
}
