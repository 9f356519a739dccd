package cmd

import (
	"fmt"

	"github.com/dendrascience/edge-aggregate/datapath"
	"github.com/spf13/cobra"
)

// NewPathCmd creates and returns the path subcommand, which prints absolute
// paths inside the data directory.
func NewPathCmd() *cobra.Command {
	var (
		dataDir string
		start   string
	)

	cmd := &cobra.Command{
		Use:   "path [NAME]",
		Short: "Resolve a path inside the data directory",
		Long: `Print the absolute path of the data directory, or of NAME inside it.

The data directory is taken from --data-dir or the config file. Without
either, it is found by walking up from --start (default: the working
directory) to the project root, the first directory holding README.md and
either .git or the data directory itself.

NAME must exist; a missing entry is an error naming the base directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			dataDir = stringDefault(cmd, "data-dir", dataDir, e.cfg.DataDir)
			r, err := resolver(dataDir, start, e.cfg.DataDirName)
			if err != nil {
				return err
			}

			p := r.Base()
			if len(args) > 0 {
				if p, err = r.Resolve(args[0]); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (default: discovered from the project root)")
	cmd.Flags().StringVar(&start, "start", ".", "Directory to start project root discovery from")

	return cmd
}

// resolver returns a Resolver for dataDir when set, otherwise one found by
// project root discovery from start.
func resolver(dataDir, start, dataDirName string) (*datapath.Resolver, error) {
	if dataDir != "" {
		return datapath.New(dataDir)
	}
	return datapath.Discover(start, dataDirName)
}
