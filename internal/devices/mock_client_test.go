package devices

import (
	"context"

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
