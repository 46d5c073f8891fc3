package config

import (
	"fmt"
	"time"
)

// Configuration is the top level configuration for fbRads.
type Configuration struct {
	AccessToken string `yaml:"access_token" env:"FBRADS_ACCESS_TOKEN" validate:"required"`
	AccountID   string `yaml:"account_id" env:"FBRADS_ACCOUNT_ID" validate:"required"`

	APIVersion string `yaml:"api_version"`
	BaseURL    string `yaml:"base_url" validate:"omitempty,url"`

	NetworkRetryDelaySeconds uint `yaml:"network_retry_delay_seconds"`
	NetworkRetryAttempts     uint `yaml:"network_retry_attempts"`
	RequestsPerSecond        int  `yaml:"requests_per_second" validate:"gte=0"`

	IdentifierSchema string `yaml:"identifier_schema" validate:"omitempty,oneof=EMAIL_SHA256 PHONE_SHA256 MOBILE_ADVERTISER_ID EXTERN_ID"`

	AudienceName        string `yaml:"audience_name"`
	AudienceDescription string `yaml:"audience_description"`
	CustomerFileSource  string `yaml:"customer_file_source"`

	HealthChecksPingID string `yaml:"health_checks_ping_id"`
}

func (c *Configuration) NetworkRetryDelay() time.Duration {
	return time.Duration(c.NetworkRetryDelaySeconds) * time.Second
}

// defaultConfiguration is written out by `fbrads init` and used to fill
// unset fields on load.
func defaultConfiguration() *Configuration {
	return &Configuration{
		APIVersion:               "",
		NetworkRetryDelaySeconds: 1,
		NetworkRetryAttempts:     5,
		RequestsPerSecond:        10,
		IdentifierSchema:         "EMAIL_SHA256",
		AudienceName:             "my-audience",
		CustomerFileSource:       "USER_PROVIDED_ONLY",
	}
}

func (c *Configuration) applyDefaults() {
	defaults := defaultConfiguration()

	if c.NetworkRetryAttempts == 0 {
		c.NetworkRetryAttempts = defaults.NetworkRetryAttempts
	}
	if c.NetworkRetryDelaySeconds == 0 {
		c.NetworkRetryDelaySeconds = defaults.NetworkRetryDelaySeconds
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if c.IdentifierSchema == "" {
		c.IdentifierSchema = defaults.IdentifierSchema
	}
}

func (c *Configuration) String() string {
	return fmt.Sprintf("account=act_%s api_version=%s rps=%d retries=%d", c.AccountID, c.APIVersion, c.RequestsPerSecond, c.NetworkRetryAttempts)
}
