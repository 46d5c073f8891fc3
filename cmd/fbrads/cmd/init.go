/*
Copyright © 2024 igbuch
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/igbuch/fbRads/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a configuration directory",
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info().Str("configuration_directory", configurationDirectory).Msg("initializing fbRads configuration directory")

		configurationLoader, err := config.NewConfigurationLoader(configurationDirectory, logger)
		if err != nil {
			logger.Error().Err(err).Msg("error creating configuration loader")
			return
		}

		err = configurationLoader.Initialize()
		if err != nil {
			logger.Error().Err(err).Msg("error writing config")
			return
		}

		logger.Info().Msg("finished initializing configuration directory for fbRads")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
