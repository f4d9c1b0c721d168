package models

// HeartbeatResponse is the envelope returned by the hub's per-device
// heartbeat endpoint. ID 0 signals success; any other value means no new
// data is available and the payload must be ignored.
type HeartbeatResponse struct {
	ID   int           `json:"id"`
	Data HeartbeatData `json:"data"`
}

// HeartbeatData carries the raw reading and the server-side read time in
// milliseconds since the epoch.
type HeartbeatData struct {
	DA        any   `json:"DA"`
	Timestamp int64 `json:"timestamp"`
}

// WriteRequest is the payload of an actuator write. The hub expects the
// value pre-encoded as a string under DA.
type WriteRequest struct {
	DA string `json:"DA"`
}

// DeviceListResponse is the envelope returned by the hub's device listing
// endpoint, mapping guid to descriptor.
type DeviceListResponse struct {
	ID   int                         `json:"id"`
	Data map[string]DeviceDescriptor `json:"data"`
}
