/*
Copyright © 2024 igbuch
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// shareCmd represents the share command
var shareCmd = &cobra.Command{
	Use:   "share <audience-id> <account-id>...",
	Short: "Share a custom audience with other ad accounts",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		account, _, err := loadAccount()
		if err != nil {
			logger.Error().Err(err).Msg("unable to load account")
			return
		}

		err = account.Share(cmd.Context(), args[0], args[1:])
		if err != nil {
			logger.Error().Err(err).Msg("unable to share audience")
			return
		}
	},
}

// unshareCmd represents the unshare command
var unshareCmd = &cobra.Command{
	Use:   "unshare <audience-id> <account-id>...",
	Short: "Revoke other ad accounts' access to a custom audience",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		account, _, err := loadAccount()
		if err != nil {
			logger.Error().Err(err).Msg("unable to load account")
			return
		}

		err = account.Unshare(cmd.Context(), args[0], args[1:])
		if err != nil {
			logger.Error().Err(err).Msg("unable to unshare audience")
			return
		}
	},
}

// sharedCmd represents the shared command
var sharedCmd = &cobra.Command{
	Use:   "shared <audience-id>",
	Short: "List the ad accounts an audience is shared with",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		account, _, err := loadAccount()
		if err != nil {
			logger.Error().Err(err).Msg("unable to load account")
			return
		}

		sharedAccounts, err := account.SharedAccounts(cmd.Context(), args[0])
		if err != nil {
			logger.Error().Err(err).Msg("unable to list shared accounts")
			return
		}

		for _, sharedAccount := range sharedAccounts {
			fmt.Println(sharedAccount.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(unshareCmd)
	rootCmd.AddCommand(sharedCmd)
}
