/*
Copyright © 2024 igbuch
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/igbuch/fbRads/audience"
	"github.com/igbuch/fbRads/config"
	"github.com/igbuch/fbRads/sync"
)

var removeSchema string

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <identifier-file>",
	Short: "Upload identifiers into the configured audience",
	Long: `Reads identifiers from a file (one per line, '#' comments skipped),
normalizes and hashes them as the configured schema requires, and uploads
them into the configured audience in chunks of 10,000. The audience is
created first if it does not exist.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("============================================================")
		fmt.Println("fbRads")
		fmt.Println("============================================================")
		fmt.Println("")

		configurationLoader, err := config.NewConfigurationLoader(configurationDirectory, logger)
		if err != nil {
			logger.Error().Err(err).Msg("unable to create a configuration loader")
			return
		}

		syncManager, err := sync.NewSyncManager(FbRadsVersion, configurationLoader, logger)
		if err != nil {
			logger.Error().Err(err).Msg("unable to create a sync manager")
			return
		}

		err = syncManager.Run(cmd.Context(), args[0])
		if err != nil {
			logger.Error().Err(err).Msg("upload failed")
		}
	},
}

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <audience-id> <identifier-file>",
	Short: "Remove identifiers from a custom audience",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		account, configuration, err := loadAccount()
		if err != nil {
			logger.Error().Err(err).Msg("unable to load account")
			return
		}

		identifiers, err := sync.ReadIdentifierFile(args[1])
		if err != nil {
			logger.Error().Err(err).Msg("unable to read identifier file")
			return
		}

		schema := removeSchema
		if schema == "" {
			schema = configuration.IdentifierSchema
		}

		results, err := account.RemoveUsers(cmd.Context(), args[0], audience.Schema(schema), identifiers)
		if err != nil {
			logger.Error().Err(err).Msg("removal finished with failures")
		}
		for _, result := range results {
			if result.Err == nil {
				logger.Info().Int("chunk", result.Chunk).Int("received", result.Received).Msg("chunk removed")
			}
		}
	},
}

func init() {
	removeCmd.Flags().StringVar(&removeSchema, "schema", "", "Identifier schema, defaults to the configured one")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(removeCmd)
}
