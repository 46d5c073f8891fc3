package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/igbuch/fbRads/log"
)

const ConfigFilename = "fbrads.yml"

// Starter configuration written by `fbrads init`.
const starterConfig = `# Configuration for fbRads.
#
# The access token and account id may also be provided through the
# FBRADS_ACCESS_TOKEN and FBRADS_ACCOUNT_ID environment variables or a
# .env file in the configuration directory.
access_token: ""
account_id: ""

# Graph API version. Leave empty for the client default.
api_version: ""

# How long to delay between retries due to network failures.
network_retry_delay_seconds: 1
# How many attempts to retry due to network errors before failing.
network_retry_attempts: 5
# Request rate limit applied across all calls.
requests_per_second: 10

# Schema of uploaded identifiers. One of EMAIL_SHA256, PHONE_SHA256,
# MOBILE_ADVERTISER_ID, EXTERN_ID.
identifier_schema: "EMAIL_SHA256"

# Audience targeted by the upload command. Created if missing.
audience_name: "my-audience"
audience_description: ""
customer_file_source: "USER_PROVIDED_ONLY"

# A ping id for healthchecks.io. If empty, no pings will be delivered.
health_checks_ping_id: ""
`

// ConfigurationLoader loads configuration
type ConfigurationLoader struct {
	configurationDirectory string
	logger                 *log.Logger

	validate *validator.Validate
}

func NewConfigurationLoader(configurationDirectory string, logger *log.Logger) (*ConfigurationLoader, error) {
	loader := &ConfigurationLoader{
		configurationDirectory: configurationDirectory,
		logger:                 logger,

		validate: validator.New(),
	}

	return loader, nil
}

func (cl *ConfigurationLoader) LoadConfiguration() (*Configuration, error) {
	// Pull in a .env file beside the config file if one exists.
	envFile := filepath.Join(cl.configurationDirectory, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, err
		}
	}

	configurationFile := cl.getConfigFile()
	data, err := os.ReadFile(configurationFile)
	if err != nil {
		return nil, err
	}

	loaded := &Configuration{}
	err = yaml.Unmarshal(data, loaded)
	if err != nil {
		return nil, err
	}

	// Environment variables win over file values.
	if accessToken := os.Getenv("FBRADS_ACCESS_TOKEN"); accessToken != "" {
		loaded.AccessToken = accessToken
	}
	if accountID := os.Getenv("FBRADS_ACCOUNT_ID"); accountID != "" {
		loaded.AccountID = accountID
	}

	loaded.applyDefaults()

	if err := cl.validate.Struct(loaded); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configurationFile, err)
	}

	return loaded, nil
}

func (cl *ConfigurationLoader) Initialize() error {
	err := os.MkdirAll(cl.configurationDirectory, 0o755)
	if err != nil {
		return err
	}

	configFile := cl.getConfigFile()
	if _, err := os.Stat(configFile); err == nil {
		cl.logger.Info().Str("config_file", configFile).Msg("configuration file already exists, not overwriting")
		return nil
	}

	err = os.WriteFile(configFile, []byte(starterConfig), 0o600)
	if err != nil {
		cl.logger.Error().Err(err).Str("config_file", configFile).Msg("error writing file")
		return err
	}

	return nil
}

func (cl *ConfigurationLoader) getConfigFile() string {
	return filepath.Join(cl.configurationDirectory, ConfigFilename)
}
