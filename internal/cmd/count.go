package cmd

import (
	"fmt"
	"os"

	"github.com/dendrascience/edge-aggregate/aggregate"
	"github.com/dendrascience/edge-aggregate/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewCountCmd creates and returns the count subcommand for the edgeagg CLI.
// It counts the files an aggregate of the directory would pick up.
func NewCountCmd() *cobra.Command {
	var (
		path         string
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count candidate edge files in a directory tree",
		Long: `Count the files under PATH that aggregate would pick up: regular files
ending in .gz, .txt or .txt.gz. Symlinks and other files are ignored.

With --progress, the number of compressed and plain files and their total
size are printed as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()
			return runCount(cmd, e.log, path, showProgress)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./", "Path to count files in")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show a breakdown by compression and total size")

	return cmd
}

func runCount(cmd *cobra.Command, log *zap.Logger, path string, showProgress bool) error {
	candidates, err := aggregate.Discover(path, log)
	if err != nil {
		return fmt.Errorf("counting files: %w", err)
	}

	out := cmd.OutOrStdout()
	if showProgress {
		var gz, plain int
		var size int64
		for _, c := range candidates {
			if util.IsGzipPath(c) {
				gz++
			} else {
				plain++
			}
			if n, err := fileSize(c); err == nil {
				size += n
			}
		}
		fmt.Fprintf(out, "Compressed files: %d\n", gz)
		fmt.Fprintf(out, "Plain files: %d\n", plain)
		fmt.Fprintf(out, "Total size on disk (bytes): %d\n", size)
	}
	fmt.Fprintf(out, "Total files: %d\n", len(candidates))
	return nil
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
