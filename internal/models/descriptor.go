package models

// DeviceDescriptor is the static metadata record the hub reports for each
// connected device. Sensor/actuator flags arrive as 0/1 integers.
type DeviceDescriptor struct {
	DeviceType string `json:"device_type,omitempty"`
	ShortName  string `json:"shortName,omitempty"`
	IsSensor   int    `json:"is_sensor"`
	IsActuator int    `json:"is_actuator"`
}
