package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// DHL Express
	DHLSiteID        string `envconfig:"DHL_SITE_ID"`
	DHLPassword      string `envconfig:"DHL_PASSWORD"`
	DHLAccountNumber string `envconfig:"DHL_ACCOUNT_NUMBER"`
	DHLBaseURL       string `envconfig:"DHL_BASE_URL" default:"https://xmlpi-ea.dhl.com/XMLShippingServlet"`
	DHLEnabled       bool   `envconfig:"DHL_ENABLED" default:"true"`
	DHLUseMock       bool   `envconfig:"DHL_USE_MOCK" default:"false"`

	// UPS Freight
	UPSUsername      string `envconfig:"UPS_USERNAME"`
	UPSPassword      string `envconfig:"UPS_PASSWORD"`
	UPSAccessLicense string `envconfig:"UPS_ACCESS_LICENSE"`
	UPSBaseURL       string `envconfig:"UPS_BASE_URL" default:"https://onlinetools.ups.com"`
	UPSEnabled       bool   `envconfig:"UPS_ENABLED" default:"true"`
	UPSUseMock       bool   `envconfig:"UPS_USE_MOCK" default:"false"`

	// USPS
	USPSUserID  string `envconfig:"USPS_USER_ID"`
	USPSBaseURL string `envconfig:"USPS_BASE_URL" default:"https://secure.shippingapis.com"`
	USPSEnabled bool   `envconfig:"USPS_ENABLED" default:"true"`
	USPSUseMock bool   `envconfig:"USPS_USE_MOCK" default:"false"`

	// Canada Post
	CanadaPostAPIKey         string `envconfig:"CANADAPOST_API_KEY"`
	CanadaPostAPISecret      string `envconfig:"CANADAPOST_API_SECRET"`
	CanadaPostCustomerNumber string `envconfig:"CANADAPOST_CUSTOMER_NUMBER"`
	CanadaPostContractID     string `envconfig:"CANADAPOST_CONTRACT_ID"`
	CanadaPostBaseURL        string `envconfig:"CANADAPOST_BASE_URL" default:"https://soa-gw.canadapost.ca"`
	CanadaPostEnabled        bool   `envconfig:"CANADAPOST_ENABLED" default:"true"`
	CanadaPostUseMock        bool   `envconfig:"CANADAPOST_USE_MOCK" default:"false"`

	// Standalone mock carrier, for local development without credentials.
	MockEnabled bool `envconfig:"MOCK_ENABLED" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.observability.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"shipcore"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry resource attributes describing this
// configuration. Service name and version are not repeated here; the tracer
// setup declares them through semconv.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool("dhl.enabled", c.DHLEnabled),
		attribute.Bool("ups.enabled", c.UPSEnabled),
		attribute.Bool("usps.enabled", c.USPSEnabled),
		attribute.Bool("canadapost.enabled", c.CanadaPostEnabled),
		attribute.Bool("mock.enabled", c.MockEnabled),
	}
}
