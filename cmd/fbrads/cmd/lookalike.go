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
	lookalikeName    string
	lookalikeRatio   float64
	lookalikeCountry string
	lookalikeType    string
)

// lookalikeCmd represents the lookalike command
var lookalikeCmd = &cobra.Command{
	Use:   "lookalike <origin-audience-id>",
	Short: "Derive a lookalike audience from a custom audience",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		account, _, err := loadAccount()
		if err != nil {
			logger.Error().Err(err).Msg("unable to load account")
			return
		}

		audienceID, err := account.CreateLookalike(cmd.Context(), lookalikeName, args[0], audience.LookalikeSpec{
			Ratio:   lookalikeRatio,
			Country: lookalikeCountry,
			Type:    lookalikeType,
		})
		if err != nil {
			logger.Error().Err(err).Msg("unable to create lookalike audience")
			return
		}

		fmt.Println(audienceID)
	},
}

func init() {
	lookalikeCmd.Flags().StringVarP(&lookalikeName, "name", "n", "", "Name of the new lookalike audience")
	lookalikeCmd.Flags().Float64VarP(&lookalikeRatio, "ratio", "r", 0.01, "Fraction of the country's population to reach (0.01 - 0.20)")
	lookalikeCmd.Flags().StringVar(&lookalikeCountry, "country", "", "Two letter country code to build the audience in")
	lookalikeCmd.Flags().StringVar(&lookalikeType, "type", "", "Optional optimization type, ex. similarity")

	rootCmd.AddCommand(lookalikeCmd)
}
