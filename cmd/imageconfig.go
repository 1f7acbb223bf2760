package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the TMDB image configuration",
	Long:  `Fetch the TMDB image configuration and list the base URL and available poster sizes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceCfg, err := tmdbClient.FetchConfig(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(formatter.FormatServiceConfig(serviceCfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
