package services

import (
	"context"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/mock"
	"github.com/tmcfarlane/goninja/internal/models"
)

// MockClient is a mock implementation of the api.Client interface.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) ListDevices(ctx context.Context) (map[string]models.DeviceDescriptor, error) {
	args := m.Called(ctx)
	var listing map[string]models.DeviceDescriptor
	if v := args.Get(0); v != nil {
		listing = v.(map[string]models.DeviceDescriptor)
	}
	return listing, args.Error(1)
}

func (m *MockClient) GetDeviceHeartbeat(ctx context.Context, guid string) (models.HeartbeatResponse, error) {
	args := m.Called(ctx, guid)
	return args.Get(0).(models.HeartbeatResponse), args.Error(1)
}

func (m *MockClient) WriteDevice(ctx context.Context, deviceURL string, req models.WriteRequest) error {
	args := m.Called(ctx, deviceURL, req)
	return args.Error(0)
}

func (m *MockClient) DeviceURL(guid string) string {
	args := m.Called(guid)
	return args.String(0)
}

// MockMQTTClient is a mock implementation of the mqtt.MQTTClient interface.
type MockMQTTClient struct {
	mock.Mock
}

func (m *MockMQTTClient) Connect() pahomqtt.Token {
	args := m.Called()
	return args.Get(0).(pahomqtt.Token)
}

func (m *MockMQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token {
	args := m.Called(topic, qos, retained, payload)
	return args.Get(0).(pahomqtt.Token)
}

func (m *MockMQTTClient) Disconnect(quiesce uint) {
	m.Called(quiesce)
}

// fakeToken is a pre-resolved paho token.
type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
