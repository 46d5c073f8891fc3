/*
Copyright © 2024 igbuch
*/
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/igbuch/fbRads/audience"
	"github.com/igbuch/fbRads/config"
	"github.com/igbuch/fbRads/graph"
	"github.com/igbuch/fbRads/log"
)

var (
	rawLogLevel string
	logger      *log.Logger

	configurationDirectory string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fbrads",
	Short: "fbRads manages custom audiences on the Facebook Marketing API.",
	Long: `fbRads is a client for the custom audience endpoints of the Facebook
Marketing API. It creates, lists, shares and deletes custom audiences,
derives lookalike audiences and uploads hashed user identifiers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Get a logger
		logger = log.NewLogger(rawLogLevel)

		configurationDirectory = expandHomeDir(configurationDirectory)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configurationDirectory, "config-directory", "c", "~/.fbrads", "Where to store fbRads' configuration")
	rootCmd.PersistentFlags().StringVarP(&rawLogLevel, "log-level", "l", "info", "Logging level")
}

func expandHomeDir(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// loadAccount loads configuration and builds the graph client and account
// handle that audience subcommands operate on.
func loadAccount() (*audience.Account, *config.Configuration, error) {
	configurationLoader, err := config.NewConfigurationLoader(configurationDirectory, logger)
	if err != nil {
		return nil, nil, err
	}

	configuration, err := configurationLoader.LoadConfiguration()
	if err != nil {
		return nil, nil, err
	}

	client, err := graph.NewClient(configuration.AccessToken, graph.ClientOptions{
		BaseURL:           configuration.BaseURL,
		Version:           configuration.APIVersion,
		RetryAttempts:     configuration.NetworkRetryAttempts,
		RetryDelay:        configuration.NetworkRetryDelay(),
		RequestsPerSecond: configuration.RequestsPerSecond,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	account, err := audience.NewAccount(configuration.AccountID, client, logger)
	if err != nil {
		return nil, nil, err
	}

	return account, configuration, nil
}
