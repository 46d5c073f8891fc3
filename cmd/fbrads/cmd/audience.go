/*
Copyright © 2024 igbuch
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/igbuch/fbRads/audience"
)

var (
	createName               string
	createDescription        string
	createSubtype            string
	createCustomerFileSource string
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a custom audience",
	Run: func(cmd *cobra.Command, args []string) {
		account, _, err := loadAccount()
		if err != nil {
			logger.Error().Err(err).Msg("unable to load account")
			return
		}

		audienceID, err := account.Create(cmd.Context(), audience.CreateParams{
			Name:               createName,
			Description:        createDescription,
			Subtype:            createSubtype,
			CustomerFileSource: createCustomerFileSource,
		})
		if err != nil {
			logger.Error().Err(err).Msg("unable to create audience")
			return
		}

		fmt.Println(audienceID)
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's custom audiences",
	Run: func(cmd *cobra.Command, args []string) {
		account, _, err := loadAccount()
		if err != nil {
			logger.Error().Err(err).Msg("unable to load account")
			return
		}

		audiences, err := account.List(cmd.Context())
		if err != nil {
			logger.Error().Err(err).Msg("unable to list audiences")
			return
		}

		for _, customAudience := range audiences {
			fmt.Printf("%s  %s (%s, ~%d users)\n", customAudience.ID, customAudience.Name, customAudience.Subtype, customAudience.ApproximateCount)
		}
	},
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <audience-id>",
	Short: "Read a single custom audience",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		account, _, err := loadAccount()
		if err != nil {
			logger.Error().Err(err).Msg("unable to load account")
			return
		}

		customAudience, err := account.Get(cmd.Context(), args[0])
		if err != nil {
			logger.Error().Err(err).Msg("unable to read audience")
			return
		}

		fmt.Printf("ID:          %s\n", customAudience.ID)
		fmt.Printf("Name:        %s\n", customAudience.Name)
		fmt.Printf("Description: %s\n", customAudience.Description)
		fmt.Printf("Subtype:     %s\n", customAudience.Subtype)
		fmt.Printf("Size:        ~%d\n", customAudience.ApproximateCount)
		if customAudience.OperationStatus != nil {
			fmt.Printf("Status:      %d %s\n", customAudience.OperationStatus.Code, customAudience.OperationStatus.Description)
		}
	},
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <audience-id>",
	Short: "Delete a custom audience",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		account, _, err := loadAccount()
		if err != nil {
			logger.Error().Err(err).Msg("unable to load account")
			return
		}

		err = account.Delete(cmd.Context(), args[0])
		if err != nil {
			logger.Error().Err(err).Msg("unable to delete audience")
			return
		}
	},
}

func init() {
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "Name of the new audience")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Description of the new audience")
	createCmd.Flags().StringVar(&createSubtype, "subtype", audience.SubtypeCustom, "Subtype of the new audience")
	createCmd.Flags().StringVar(&createCustomerFileSource, "customer-file-source", "USER_PROVIDED_ONLY", "Provenance of uploaded identifiers")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
}
