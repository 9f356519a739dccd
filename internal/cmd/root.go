package cmd

import (
	"github.com/dendrascience/edge-aggregate/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the edgeagg CLI.
// It sets up all subcommands, command groups, and the persistent flags.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "edgeagg",
		Short: "edgeagg - aggregate edge-list files into one gzip stream",
		Long: `edgeagg concatenates the edge-list files of a directory tree into a single
gzip-compressed stream and records what went into it in a JSON manifest.

Use subcommands to perform different operations:
  - aggregate: Aggregate .txt, .gz and .txt.gz files into one .gz file
  - validate: Check an aggregate against its manifest
  - mount: Mount a read-only view of an aggregate
  - count: Count candidate files in a directory tree
  - path: Resolve paths inside the data directory
  - groups: Summarize a ground-truth groupings file
  - seed: Generate synthetic edge files for testing`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $HOME/.edgeagg)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	groupAggregation := "aggregation"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupAggregation,
		Title: "Aggregation",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utilities",
	})

	aggregateCmd := NewAggregateCmd()
	validateCmd := NewValidateCmd()
	mountCmd := NewMountCmd()
	countCmd := NewCountCmd()
	pathCmd := NewPathCmd()
	groupsCmd := NewGroupsCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	aggregateCmd.GroupID = groupAggregation
	validateCmd.GroupID = groupAggregation
	mountCmd.GroupID = groupAggregation
	countCmd.GroupID = groupUtilities
	pathCmd.GroupID = groupUtilities
	groupsCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// NewVersionCmd prints the version and build information.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion(cmd.OutOrStdout(), "edgeagg")
		},
	}
}
