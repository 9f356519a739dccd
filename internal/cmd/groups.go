package cmd

import (
	"fmt"

	"github.com/dendrascience/edge-aggregate/groundtruth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewGroupsCmd creates and returns the groups subcommand, which summarizes
// a ground-truth groupings file.
func NewGroupsCmd() *cobra.Command {
	var (
		dataDir string
		top     int
	)

	cmd := &cobra.Command{
		Use:   "groups [FILE]",
		Short: "Summarize a ground-truth groupings file",
		Long: `Load a ground-truth file of "<node> <group>" lines and print the number of
groups and nodes, followed by the largest groups.

FILE defaults to groupings.gt.txt in the data directory. A relative FILE is
looked up in the data directory when one is configured.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			name := groundtruth.DefaultFileName
			if len(args) > 0 {
				name = args[0]
			}
			dataDir = stringDefault(cmd, "data-dir", dataDir, e.cfg.DataDir)

			path := name
			if dataDir != "" || len(args) == 0 {
				r, err := resolver(dataDir, ".", e.cfg.DataDirName)
				if err != nil {
					return err
				}
				if path, err = r.File(name); err != nil {
					return err
				}
			}
			e.log.Debug("reading ground truth", zap.String("path", path))
			return runGroups(cmd, path, top)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (default: discovered from the project root)")
	cmd.Flags().IntVarP(&top, "top", "n", 5, "Number of largest groups to list")

	return cmd
}

func runGroups(cmd *cobra.Command, path string, top int) error {
	gt, err := groundtruth.ReadFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Ground truth: %s\n", path)
	fmt.Fprintf(out, "Number of ground truth groups: %d\n", len(gt.GroupNodes))
	fmt.Fprintf(out, "Number of nodes with ground truth: %d\n", len(gt.NodeGroup))
	for i, g := range gt.Largest(top) {
		fmt.Fprintf(out, "  %d. %s (%d nodes)\n", i+1, g, len(gt.GroupNodes[g]))
	}
	return nil
}
