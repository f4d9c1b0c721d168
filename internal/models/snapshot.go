package models

import "time"

// DeviceSnapshot is a point-in-time view of a device's identity, metadata
// and latest reading. LastHeartbeat and LastRead are nil until the first
// successful poll.
type DeviceSnapshot struct {
	GUID          string     `json:"guid"`
	Type          string     `json:"type,omitempty"`
	Name          string     `json:"name,omitempty"`
	IsSensor      bool       `json:"is_sensor"`
	IsActuator    bool       `json:"is_actuator"`
	Data          any        `json:"data"`
	LastHeartbeat *time.Time `json:"last_heartbeat,omitempty"`
	LastRead      *time.Time `json:"last_read,omitempty"`
}
