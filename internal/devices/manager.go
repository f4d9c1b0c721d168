package devices

import (
	"context"
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
	"github.com/tmcfarlane/goninja/pkg/api"
)

// Manager holds the typed device set for one hub, keyed by guid. Discover
// builds it from the hub's device listing and keeps existing instances (and
// their readings and subscriptions) across refreshes.
type Manager struct {
	client  api.Client
	logger  zerolog.Logger
	devices cmap.ConcurrentMap[string, Typed]
}

// NewManager creates an empty manager.
func NewManager(client api.Client, logger zerolog.Logger) *Manager {
	return &Manager{
		client:  client,
		logger:  logger,
		devices: cmap.New[Typed](),
	}
}

// Discover fetches the hub's device listing and reconciles the managed set:
// new guids are constructed through the type registry, known guids keep
// their instance, and guids the hub no longer reports are dropped.
func (m *Manager) Discover(ctx context.Context) error {
	listing, err := m.client.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("device discovery failed: %w", err)
	}

	for guid, desc := range listing {
		if _, ok := m.devices.Get(guid); ok {
			continue
		}
		m.devices.Set(guid, New(m.client, guid, desc, m.logger))
		m.logger.Info().Str("guid", guid).Str("device_type", desc.DeviceType).Msg("Device discovered")
	}

	for _, guid := range m.devices.Keys() {
		if _, ok := listing[guid]; !ok {
			m.devices.Remove(guid)
			m.logger.Info().Str("guid", guid).Msg("Device dropped from hub listing")
		}
	}

	return nil
}

// Get returns the device registered under the guid.
func (m *Manager) Get(guid string) (Typed, bool) {
	return m.devices.Get(guid)
}

// Remove drops a device from the managed set.
func (m *Manager) Remove(guid string) {
	m.devices.Remove(guid)
}

// All returns the managed devices in no particular order.
func (m *Manager) All() []Typed {
	all := make([]Typed, 0, m.devices.Count())
	for item := range m.devices.IterBuffered() {
		all = append(all, item.Val)
	}
	return all
}

// Count returns the number of managed devices.
func (m *Manager) Count() int {
	return m.devices.Count()
}
