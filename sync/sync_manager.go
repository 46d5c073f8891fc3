package sync

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/igbuch/fbRads/audience"
	"github.com/igbuch/fbRads/config"
	"github.com/igbuch/fbRads/graph"
	"github.com/igbuch/fbRads/health"
	"github.com/igbuch/fbRads/log"
)

// A sync manager runs one-shot identifier uploads into a configured
// custom audience.
type SyncManager struct {
	version string

	configurationLoader *config.ConfigurationLoader
	logger              *log.Logger
}

func NewSyncManager(
	version string,

	configurationLoader *config.ConfigurationLoader,
	logger *log.Logger,
) (*SyncManager, error) {
	syncManager := &SyncManager{
		version: version,

		configurationLoader: configurationLoader,
		logger:              logger,
	}

	return syncManager, nil
}

// Run reads identifiers from the given file and uploads them into the
// configured audience, creating the audience first if it does not exist.
func (sm *SyncManager) Run(ctx context.Context, identifierFile string) error {
	configuration, err := sm.configurationLoader.LoadConfiguration()
	if err != nil {
		sm.logger.Error().Err(err).Msg("failed to load configuration from file")
		return err
	}

	// Send health check pings if enabled
	var healthClient *health.HealthCheckClient
	if configuration.HealthChecksPingID != "" {
		healthClient = health.NewHealthCheckClient(configuration.AudienceName, configuration.HealthChecksPingID, sm.logger)
	} else {
		sm.logger.Info().Msg("not sending healthchecks.io pings as they are disabled in config.")
	}

	err = sm.run(ctx, configuration, identifierFile, healthClient)

	if healthClient != nil {
		var pingErr error
		if err == nil {
			pingErr = healthClient.Success(configuration.AudienceName)
		} else {
			pingErr = healthClient.Failed(err.Error())
		}
		if pingErr != nil {
			sm.logger.Error().Err(pingErr).Msg("failed to deliver healthchecks.io ping")
		}
	}

	return err
}

func (sm *SyncManager) run(ctx context.Context, configuration *config.Configuration, identifierFile string, healthClient *health.HealthCheckClient) error {
	if healthClient != nil {
		if err := healthClient.Start(configuration.AudienceName); err != nil {
			sm.logger.Error().Err(err).Msg("failed to deliver healthchecks.io ping")
		}
	}

	identifiers, err := ReadIdentifierFile(identifierFile)
	if err != nil {
		return err
	}
	sm.logger.Info().Int("num_identifiers", len(identifiers)).Str("file", identifierFile).Msg("read identifiers")

	client, err := graph.NewClient(configuration.AccessToken, graph.ClientOptions{
		BaseURL:           configuration.BaseURL,
		Version:           configuration.APIVersion,
		RetryAttempts:     configuration.NetworkRetryAttempts,
		RetryDelay:        configuration.NetworkRetryDelay(),
		RequestsPerSecond: configuration.RequestsPerSecond,
	}, sm.logger)
	if err != nil {
		return err
	}

	account, err := audience.NewAccount(configuration.AccountID, client, sm.logger)
	if err != nil {
		return err
	}

	audienceID, err := sm.ensureAudience(ctx, account, configuration)
	if err != nil {
		return err
	}

	results, err := account.AddUsers(ctx, audienceID, audience.Schema(configuration.IdentifierSchema), identifiers)
	printResults(results, sm.logger)

	return err
}

// ensureAudience finds the configured audience by name, creating it if it
// does not exist yet.
func (sm *SyncManager) ensureAudience(ctx context.Context, account *audience.Account, configuration *config.Configuration) (string, error) {
	existing, err := account.FindByName(ctx, configuration.AudienceName)
	if err != nil {
		return "", err
	}
	if existing != nil {
		sm.logger.Info().Str("audience_id", existing.ID).Str("name", existing.Name).Msg("found existing audience")
		return existing.ID, nil
	}

	return account.Create(ctx, audience.CreateParams{
		Name:               configuration.AudienceName,
		Description:        configuration.AudienceDescription,
		CustomerFileSource: configuration.CustomerFileSource,
	})
}

// ReadIdentifierFile reads one identifier per line. Blank lines and lines
// starting with '#' are skipped.
func ReadIdentifierFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	identifiers := []string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		identifiers = append(identifiers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return identifiers, nil
}

func printResults(results audience.UploadResults, log *log.Logger) {
	log.Info().Msg("Upload Results:")
	for _, result := range results {
		if result.Err == nil {
			log.Info().Int("received", result.Received).Int("invalid", result.Invalid).Msg(fmt.Sprintf("✅ chunk %d: Success", result.Chunk))
		} else {
			log.Error().Err(result.Err).Msg(fmt.Sprintf("❌ chunk %d: Failure", result.Chunk))
		}
	}
}
