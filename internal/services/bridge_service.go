package services

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
	"github.com/tmcfarlane/goninja/internal/devices"
	"github.com/tmcfarlane/goninja/pkg/mqtt"
)

// BridgeService mirrors device heartbeat and change events to an MQTT broker
// as JSON snapshots, one topic per device and event kind. Broker trouble is
// logged but never fails the poll that triggered the event.
type BridgeService struct {
	TopicPrefix string
	QOS         int
	Manager     *devices.Manager
	MqttClient  mqtt.MQTTClient
	Logger      zerolog.Logger

	subscriptions []bridgeSubscription
	running       bool
}

type bridgeSubscription struct {
	device *devices.Device
	sub    devices.Subscription
}

// NewBridgeService initializes a new BridgeService.
func NewBridgeService(topicPrefix string, qos int, manager *devices.Manager, mqttClient mqtt.MQTTClient, logger zerolog.Logger) *BridgeService {
	return &BridgeService{
		TopicPrefix: topicPrefix,
		QOS:         qos,
		Manager:     manager,
		MqttClient:  mqttClient,
		Logger:      logger,
	}
}

// Start subscribes to every managed device. Devices discovered after Start
// are picked up by the next Stop/Start cycle.
func (b *BridgeService) Start() error {
	if b.running {
		b.Logger.Warn().Msg("BridgeService is already running")
		return errors.New("bridge service is already running")
	}

	for _, dev := range b.Manager.All() {
		device := dev.Base()
		for _, kind := range []devices.EventKind{devices.EventHeartbeat, devices.EventChange} {
			sub := device.Subscribe(kind, b.publishEvent)
			b.subscriptions = append(b.subscriptions, bridgeSubscription{device: device, sub: sub})
		}
	}

	b.running = true
	b.Logger.Info().Str("topic_prefix", b.TopicPrefix).Int("devices", b.Manager.Count()).Msg("BridgeService started successfully")
	return nil
}

// Stop unsubscribes from all devices.
func (b *BridgeService) Stop() error {
	if !b.running {
		b.Logger.Warn().Msg("BridgeService is not running")
		return errors.New("bridge service is not running")
	}

	for _, s := range b.subscriptions {
		s.device.Unsubscribe(s.sub)
	}
	b.subscriptions = nil
	b.running = false

	b.Logger.Info().Msg("BridgeService stopped successfully")
	return nil
}

// publishEvent forwards one device event to the broker. It always returns
// nil so a broker outage cannot abort the device's notification sequence.
func (b *BridgeService) publishEvent(ev devices.Event) error {
	snapshot := ev.Device.Snapshot(true)

	payload, err := json.Marshal(snapshot)
	if err != nil {
		b.Logger.Error().Err(err).Str("guid", snapshot.GUID).Msg("Failed to serialize device snapshot")
		return nil
	}

	topic := b.TopicPrefix + "/" + snapshot.GUID + "/" + ev.Kind.String()
	token := b.MqttClient.Publish(topic, byte(b.QOS), false, payload)
	token.Wait()

	if err := token.Error(); err != nil {
		b.Logger.Error().Err(err).Str("topic", topic).Msg("Failed to publish device event")
	} else {
		b.Logger.Debug().Str("topic", topic).Msg("Device event published")
	}
	return nil
}
