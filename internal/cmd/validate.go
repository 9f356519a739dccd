package cmd

import (
	"fmt"

	"github.com/dendrascience/edge-aggregate/aggregate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewValidateCmd creates and returns the validate subcommand for the edgeagg
// CLI. It checks an aggregate against the manifest written with it.
func NewValidateCmd() *cobra.Command {
	var checkInputs bool

	cmd := &cobra.Command{
		Use:   "validate MANIFEST",
		Short: "Validate an aggregate against its manifest",
		Long: `Validate an aggregate against the manifest written alongside it.

This command checks that the output named in MANIFEST exists, that its
compressed size matches, that it decompresses cleanly to
total_uncompressed_bytes, and that files_processed agrees with per_file.

With --check-inputs, every input listed in per_file is sized and hashed
again to detect files changed since the aggregate was made.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()
			return runValidate(cmd, e.log, args[0], checkInputs)
		},
	}

	cmd.Flags().BoolVar(&checkInputs, "check-inputs", false, "Re-hash input files listed in the manifest")

	return cmd
}

func runValidate(cmd *cobra.Command, log *zap.Logger, manifestPath string, checkInputs bool) error {
	m, err := aggregate.ReadManifest(manifestPath)
	if err != nil {
		return err
	}
	log.Debug("validating aggregate",
		zap.String("manifest", manifestPath),
		zap.String("output", m.Output),
		zap.Bool("check_inputs", checkInputs))

	out := cmd.OutOrStdout()
	problems := aggregate.Verify(m, checkInputs)
	for _, p := range problems {
		fmt.Fprintf(out, "  - %s\n", p)
	}

	fmt.Fprintf(out, "\nValidation complete:\n")
	fmt.Fprintf(out, "  Files in aggregate: %d\n", len(m.PerFile))
	fmt.Fprintf(out, "  Files skipped during aggregation: %d\n", len(m.Skipped))
	fmt.Fprintf(out, "  Total errors: %d\n", len(problems))

	if len(problems) > 0 {
		return fmt.Errorf("%w: %d problems in %s", aggregate.ErrManifestMismatch, len(problems), manifestPath)
	}
	return nil
}
