package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tmcfarlane/goninja/internal/devices"
	"github.com/tmcfarlane/goninja/internal/services"
	"github.com/tmcfarlane/goninja/internal/utils"
	"github.com/tmcfarlane/goninja/pkg/api"
	"github.com/tmcfarlane/goninja/pkg/file"
	"github.com/tmcfarlane/goninja/pkg/identity"
	"github.com/tmcfarlane/goninja/pkg/mqtt"
)

func main() {
	// Set up structured logging with JSON output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Initialize file operations handler
	fileClient := file.NewFileService()

	// Load configuration from file
	config, err := utils.LoadConfig("configs/config.yaml", fileClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Load hub credentials
	credentials := identity.NewCredentialsStore(config.Hub.CredentialsFile, fileClient)
	if err := credentials.Load(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to load hub credentials")
	}

	timeout := config.Hub.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	// Initialize the hub REST client and discover devices
	hubClient := api.NewHTTPClient(config.Hub.Endpoint, credentials, timeout, logger)

	manager := devices.NewManager(hubClient, logger)
	if err := manager.Discover(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to discover devices")
	}
	logger.Info().Int("devices", manager.Count()).Msg("Device discovery complete")

	var bridge *services.BridgeService
	if config.Services.Bridge.Enabled {
		// Generate a unique MQTT Client ID by appending a UUID
		clientID := config.Services.Bridge.ClientID + "-" + uuid.New().String()

		mqttClient := mqtt.NewMqttService(fileClient)
		if err := mqttClient.Initialize(config.Services.Bridge.Broker, clientID, config.Services.Bridge.CACertificate); err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize MQTT connection")
		}
		defer mqttClient.Disconnect(250)

		bridge = services.NewBridgeService(config.Services.Bridge.TopicPrefix, config.Services.Bridge.QOS, manager, mqttClient, logger)
		if err := bridge.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start MQTT bridge")
		}
	}

	var poller *services.PollerService
	if config.Services.Poller.Enabled {
		poller = services.NewPollerService(config.Services.Poller.Interval, config.Services.Poller.Workers, manager, logger)
		if err := poller.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start poller")
		}
	}

	logger.Info().Msg("All services started successfully")

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	logger.Info().Msg("Shutting down gracefully...")
	if poller != nil {
		poller.Stop()
	}
	if bridge != nil {
		bridge.Stop()
	}
}
