package utils

import (
	"time"

	"github.com/tmcfarlane/goninja/pkg/file"
)

// Config represents the structure of the configuration file.
type Config struct {
	Hub struct {
		Endpoint        string        `yaml:"endpoint"`         // Hub REST endpoint, e.g. https://api.ninja.is
		CredentialsFile string        `yaml:"credentials_file"` // Path to the JSON credentials file
		Timeout         time.Duration `yaml:"timeout"`          // Per-request HTTP timeout
	} `yaml:"hub"`

	Services struct {
		Poller struct {
			Enabled  bool          `yaml:"enabled"`  // Enable/disable the polling service
			Interval time.Duration `yaml:"interval"` // Interval between device polls
			Workers  int           `yaml:"workers"`  // Concurrent heartbeats per tick
		} `yaml:"poller"`

		Bridge struct {
			Enabled       bool   `yaml:"enabled"`        // Enable/disable the MQTT bridge
			Broker        string `yaml:"broker"`         // MQTT broker address
			ClientID      string `yaml:"client_id"`      // MQTT client ID
			TopicPrefix   string `yaml:"topic_prefix"`   // Topic prefix for republished events
			QOS           int    `yaml:"qos"`            // MQTT QoS level for republished events
			CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate, empty for plain TCP
		} `yaml:"bridge"`
	} `yaml:"services"`
}

// LoadConfig loads the YAML configuration from the specified file.
// It returns a pointer to the Config struct and an error if loading fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}
