package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"

	"github.com/dendrascience/edge-aggregate/groundtruth"
	"github.com/dendrascience/edge-aggregate/util"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

type seedOptions struct {
	output     string
	files      int
	edges      int // per file
	nodes      int
	groups     int
	buckets    int
	gzipEvery  int // every Nth file is gzipped, 0 for none
	randomSeed uint64
}

// NewSeedCmd creates and returns the seed subcommand for the edgeagg CLI.
// It generates synthetic edge files and a matching ground-truth file.
func NewSeedCmd() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate synthetic edge files for testing",
		Long: `Generate edge-list files for testing aggregate.

Node ids are UUIDs drawn from a fixed pool. Each file holds one
"<src> <dst>" edge per line and is placed in a bucket directory chosen by
hashing its name. Every Nth file (--gzip-every) is written gzip-compressed
as .txt.gz, the rest as plain .txt.

A groupings.gt.txt file assigning every node to one of --groups groups is
written to the output directory, so the result can be used as a data
directory for the path and groups commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()
			if opts.randomSeed == 0 {
				opts.randomSeed = rand.Uint64()
			}
			return runSeed(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&opts.files, "count", "c", 20, "Number of edge files to generate")
	cmd.Flags().IntVarP(&opts.edges, "edges", "e", 100, "Number of edges per file")
	cmd.Flags().IntVar(&opts.nodes, "nodes", 200, "Size of the node id pool")
	cmd.Flags().IntVarP(&opts.groups, "groups", "g", 8, "Number of ground-truth groups")
	cmd.Flags().IntVar(&opts.buckets, "buckets", 4, "Number of bucket directories")
	cmd.Flags().IntVar(&opts.gzipEvery, "gzip-every", 3, "Gzip every Nth file (0 disables)")
	cmd.Flags().Uint64Var(&opts.randomSeed, "seed", 0, "Random seed for edge selection (0 picks one)")

	cmd.MarkFlagRequired("output")

	return cmd
}

func bucketOf(s string, n int) int {
	b := colorhash.HashString(s) % n
	if b < 0 {
		b += n
	}
	return b
}

func runSeed(out io.Writer, opts seedOptions) error {
	if opts.files < 1 || opts.edges < 1 || opts.nodes < 2 || opts.groups < 1 || opts.buckets < 1 {
		return fmt.Errorf("seed: count, edges, groups and buckets must be positive and nodes at least 2")
	}
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pool := make([]string, opts.nodes)
	for i := range pool {
		pool[i] = uuid.New().String()
	}
	slices.Sort(pool)

	rng := rand.New(rand.NewPCG(opts.randomSeed, opts.randomSeed))
	dirFileCounts := make(map[string]int)
	var compressed int

	for i := range opts.files {
		name := fmt.Sprintf("edges_%05d.txt", i)
		gz := opts.gzipEvery > 0 && (i+1)%opts.gzipEvery == 0
		if gz {
			name += ".gz"
			compressed++
		}
		dir := filepath.Join(opts.output, fmt.Sprintf("bucket-%02d", bucketOf(name, opts.buckets)))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := writeEdgeFile(filepath.Join(dir, name), gz, opts.edges, pool, rng); err != nil {
			return err
		}
		dirFileCounts[dir]++
	}

	gtPath := filepath.Join(opts.output, groundtruth.DefaultFileName)
	if err := writeGroundTruth(gtPath, pool, opts.groups); err != nil {
		return err
	}

	fmt.Fprintf(out, "Successfully created %d files (%d compressed)\n", opts.files, compressed)
	fmt.Fprintf(out, "Files distributed across %d directories\n", len(dirFileCounts))
	fmt.Fprintf(out, "Ground truth for %d nodes written to %s\n", len(pool), gtPath)
	return nil
}

func writeEdgeFile(path string, gz bool, edges int, pool []string, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	var closeGz func() error
	if gz {
		zw, err := util.NewGzipWriter(f, util.DefaultLevel)
		if err != nil {
			return err
		}
		w, closeGz = zw, zw.Close
	}

	bw := bufio.NewWriter(w)
	for range edges {
		src := rng.IntN(len(pool))
		dst := rng.IntN(len(pool) - 1)
		if dst >= src {
			dst++
		}
		fmt.Fprintf(bw, "%s %s\n", pool[src], pool[dst])
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if closeGz != nil {
		if err := closeGz(); err != nil {
			return err
		}
	}
	return f.Close()
}

func writeGroundTruth(path string, nodes []string, groups int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	fmt.Fprintln(bw, "# node group")
	for _, n := range nodes {
		fmt.Fprintf(bw, "%s g%02d\n", n, bucketOf(n, groups))
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
