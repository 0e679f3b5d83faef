package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "greynoise-etl",
		Short: "greynoise-etl - GreyNoise Community API to MongoDB connector",
		Long: `greynoise-etl pulls threat intelligence from the GreyNoise Community API
and persists normalized records into MongoDB. A run executes the single IP,
batch IP and health check pipelines in fixed order, then exits.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnector()
		},
	}

	return rootCmd
}
