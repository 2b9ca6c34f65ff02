package config

import (
	"fmt"
	"os"
)

// Config holds all configuration for the dropout service.
type Config struct {
	GRPCPort     string
	HTTPPort     string
	EventTopic   string
	OTLPEndpoint string
	Environment  string
	LogLevel     string
	LogFormat    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		GRPCPort:     getEnv("GRPC_PORT", "8091"),
		HTTPPort:     getEnv("HTTP_PORT", "9091"),
		EventTopic:   getEnv("EVENT_TOPIC", "dropout.events"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
	}
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
