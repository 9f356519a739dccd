package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/edge-aggregate/edgefs"
	"github.com/dendrascience/edge-aggregate/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMountCmd creates and returns the mount subcommand for the edgeagg CLI.
// It mounts a read-only view of an aggregate.
func NewMountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount MANIFEST MOUNTPOINT",
		Short: "Mount a read-only view of an aggregate",
		Long: `Mount a read-only FUSE view of the aggregate described by MANIFEST.

The mountpoint shows the decompressed aggregate and the manifest. The mount
stays up until interrupted.

MANIFEST must come from a real run, not a dry run. MOUNTPOINT may not
contain, or be inside, the directory holding the aggregate.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()
			return runMount(cmd, e.log, args[0], args[1])
		},
	}
}

func runMount(cmd *cobra.Command, log *zap.Logger, manifestPath, mountpoint string) error {
	filesystem, err := edgefs.Open(manifestPath)
	if err != nil {
		return err
	}
	if pathsOverlap(filepath.Dir(filesystem.Manifest.Output), mountpoint) {
		return fmt.Errorf("mountpoint %s overlaps the aggregate directory %s",
			mountpoint, filepath.Dir(filesystem.Manifest.Output))
	}

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("edgeagg"),
		fuse.Subtype("edgefs"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()
	go func() {
		<-ctx.Done()
		log.Info("received interrupt signal, shutting down")
		if err := fuse.Unmount(mountpoint); err != nil {
			log.Warn("unmount failed", zap.String("mountpoint", mountpoint), zap.Error(err))
		}
	}()

	log.Info("mounted aggregate",
		zap.String("version", version.GetVersion()),
		zap.String("mountpoint", mountpoint),
		zap.String("output", filesystem.Manifest.Output))
	if err := fs.Serve(c, filesystem); err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}

// pathsOverlap reports whether one path is, or is inside, the other.
func pathsOverlap(path1, path2 string) bool {
	abs1, err1 := filepath.Abs(path1)
	abs2, err2 := filepath.Abs(path2)
	if err1 != nil || err2 != nil {
		return false
	}
	if abs1 == abs2 {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(abs1, abs2+sep) || strings.HasPrefix(abs2, abs1+sep)
}
