package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dendrascience/edge-aggregate/aggregate"
	"github.com/dendrascience/edge-aggregate/datapath"
	"github.com/dendrascience/edge-aggregate/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DefaultManifest is the manifest path used when neither the flag nor the
// config file names one.
const DefaultManifest = "aggregate_manifest.json"

// NewAggregateCmd creates and returns the aggregate subcommand for the
// edgeagg CLI.
func NewAggregateCmd() *cobra.Command {
	var (
		manifestPath  string
		compressLevel int
		dryRun        bool
		dataDir       string
	)

	cmd := &cobra.Command{
		Use:   "aggregate INPUT_DIR OUTPUT_GZ",
		Short: "Aggregate edge files into a single gzip file",
		Long: `Aggregate every .txt, .gz and .txt.gz file under INPUT_DIR into OUTPUT_GZ.

Files are visited in sorted path order. Compressed inputs are decompressed
before concatenation, so OUTPUT_GZ holds one gzip stream of plain text. The
output is written to OUTPUT_GZ.tmp and renamed into place when complete.

Files that cannot be read are skipped with a warning and listed in the
manifest. Pass --manifest "" to skip writing the manifest.

With --data-dir, a relative INPUT_DIR is looked up under the data directory.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			manifestPath = stringDefault(cmd, "manifest", manifestPath, e.cfg.Manifest)
			dataDir = stringDefault(cmd, "data-dir", dataDir, e.cfg.DataDir)
			if cmd.Flags().Changed("compresslevel") {
				if err := util.ValidateLevel(compressLevel); err != nil {
					return err
				}
			} else if e.cfg.CompressLevel != 0 {
				compressLevel = e.cfg.CompressLevel
			}

			inputDir := args[0]
			if dataDir != "" && !filepath.IsAbs(inputDir) {
				r, err := datapath.New(dataDir)
				if err != nil {
					return err
				}
				if inputDir, err = r.Subdir(inputDir); err != nil {
					return err
				}
				e.log.Debug("resolved input under data directory", zap.String("input", inputDir))
			}

			return runAggregate(cmd, e.log, aggregate.Options{
				InputDir:     inputDir,
				Output:       args[1],
				ManifestPath: manifestPath,
				Level:        compressLevel,
				DryRun:       dryRun,
			})
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", DefaultManifest, "Path to write the JSON manifest")
	cmd.Flags().IntVar(&compressLevel, "compresslevel", util.DefaultLevel, "Gzip compression level (1-9)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List files without writing output")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Resolve a relative INPUT_DIR under this data directory")

	return cmd
}

func runAggregate(cmd *cobra.Command, log *zap.Logger, opts aggregate.Options) error {
	out := cmd.OutOrStdout()
	opts.Logger = log
	opts.Progress = out

	a, err := aggregate.New(opts)
	if err != nil {
		return err
	}
	res, err := a.Run(cmd.Context())
	if err != nil {
		return err
	}

	if opts.DryRun {
		if opts.ManifestPath != "" {
			fmt.Fprintln(out, "Wrote manifest (dry-run) to", opts.ManifestPath)
		}
		return nil
	}
	printSummary(out, res, opts.ManifestPath)
	return nil
}

func printSummary(w io.Writer, res *aggregate.Result, manifestPath string) {
	m := res.Manifest
	compressed := "unknown"
	if m.CompressedSizeBytes != nil {
		compressed = fmt.Sprint(*m.CompressedSizeBytes)
	}
	fmt.Fprintln(w, "Wrote aggregated gz to", m.Output)
	fmt.Fprintln(w, "Total uncompressed bytes written:", m.TotalUncompressedBytes)
	fmt.Fprintln(w, "Compressed output size (bytes):", compressed)
	if n := len(m.Skipped); n > 0 {
		fmt.Fprintf(w, "Skipped %d of %d files\n", n, len(res.Candidates))
	}
	if manifestPath != "" {
		fmt.Fprintln(w, "Wrote manifest to", manifestPath)
	}
}
