package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dendrascience/edge-aggregate/util"
	"go.uber.org/zap"
)

// TmpSuffix is appended to the output path while the aggregate is written.
const TmpSuffix = ".tmp"

// Options configures an Aggregator.
type Options struct {
	InputDir     string
	Output       string
	ManifestPath string // empty means no manifest is written
	Level        int    // gzip level 1-9, 0 means util.DefaultLevel
	DryRun       bool

	Logger   *zap.Logger      // warnings for skipped files; nop if nil
	Progress io.Writer        // human-readable progress; discarded if nil
	Now      func() time.Time // clock for created_at; time.Now if nil
}

// Result is what a run produced.
type Result struct {
	Manifest   *Manifest
	Candidates []string
	Files      []FileResult // one per candidate, real runs only
}

// Skipped returns the results of files left out of the aggregate.
func (r *Result) Skipped() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if _, ok := f.Skipped(); ok {
			out = append(out, f)
		}
	}
	return out
}

// Aggregator runs one aggregation. It is not safe for concurrent use.
type Aggregator struct {
	opts     Options
	log      *zap.Logger
	progress io.Writer
	now      func() time.Time
}

// New validates opts and returns an Aggregator.
func New(opts Options) (*Aggregator, error) {
	if opts.InputDir == "" {
		return nil, ErrMissingInputDir
	}
	if opts.Output == "" {
		return nil, ErrMissingOutput
	}
	if opts.Level == 0 {
		opts.Level = util.DefaultLevel
	}
	if err := util.ValidateLevel(opts.Level); err != nil {
		return nil, err
	}
	a := &Aggregator{
		opts:     opts,
		log:      opts.Logger,
		progress: opts.Progress,
		now:      opts.Now,
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.progress == nil {
		a.progress = io.Discard
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a, nil
}

// Run discovers candidates under the input directory and aggregates them.
//
// Run fails with ErrNoCandidates when nothing matches, leaving no output and
// no manifest behind. Files that fail individually are recorded in the
// result and the manifest, and do not fail the run. If the manifest cannot
// be written after the output was committed, the result is returned together
// with the error.
func (a *Aggregator) Run(ctx context.Context) (*Result, error) {
	candidates, err := Discover(a.opts.InputDir, a.log)
	if err != nil {
		return nil, err
	}
	candidates = a.excludeOutput(candidates)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoCandidates, a.opts.InputDir)
	}

	a.reportCandidates(candidates)

	if a.opts.DryRun {
		return a.dryRun(candidates)
	}
	return a.aggregate(ctx, candidates)
}

// excludeOutput drops the output file from the candidates so a rerun into
// the input tree does not aggregate the previous aggregate.
func (a *Aggregator) excludeOutput(candidates []string) []string {
	out, err := filepath.Abs(a.opts.Output)
	if err != nil {
		return candidates
	}
	kept := candidates[:0]
	for _, c := range candidates {
		if abs, err := filepath.Abs(c); err == nil && abs == out {
			a.log.Debug("ignoring output file found among candidates", zap.String("path", c))
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (a *Aggregator) reportCandidates(candidates []string) {
	n := len(candidates)
	fmt.Fprintf(a.progress, "Found %d files to aggregate.\n", n)
	for i, p := range candidates {
		idx := i + 1
		switch {
		case idx <= 10 || idx%50 == 0:
			fmt.Fprintf(a.progress, "  [%d/%d] %s\n", idx, n, p)
		case idx == 11:
			fmt.Fprintln(a.progress, "  ...")
		}
	}
}

func (a *Aggregator) newManifest() *Manifest {
	return &Manifest{
		CreatedAt: a.now().UTC(),
		InputDir:  a.opts.InputDir,
		Output:    a.opts.Output,
		DryRun:    a.opts.DryRun,
	}
}

func (a *Aggregator) dryRun(candidates []string) (*Result, error) {
	fmt.Fprintln(a.progress, "Dry-run mode; not writing output")

	m := a.newManifest()
	m.Files = make([]SizeEntry, 0, len(candidates))
	for _, p := range candidates {
		entry := SizeEntry{Path: p}
		if info, err := os.Stat(p); err == nil {
			size := info.Size()
			entry.Size = &size
		} else {
			a.log.Warn("could not stat file", zap.String("path", p), zap.Error(err))
		}
		m.Files = append(m.Files, entry)
	}

	res := &Result{Manifest: m, Candidates: candidates}
	if a.opts.ManifestPath != "" {
		if err := m.Save(a.opts.ManifestPath); err != nil {
			return res, fmt.Errorf("write manifest %s: %w", a.opts.ManifestPath, err)
		}
	}
	return res, nil
}

func (a *Aggregator) aggregate(ctx context.Context, candidates []string) (*Result, error) {
	tmp := a.opts.Output + TmpSuffix
	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", tmp, err)
	}
	zw, err := util.NewGzipWriter(f, a.opts.Level)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, err
	}
	abort := func(err error) (*Result, error) {
		zw.Close()
		f.Close()
		os.Remove(tmp)
		return nil, err
	}

	m := a.newManifest()
	m.PerFile = []FileEntry{}
	m.Skipped = []SkipEntry{}
	res := &Result{Manifest: m, Candidates: candidates}

	buf := make([]byte, util.ChunkSize)
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}
		fr, err := a.processFile(zw, path, buf)
		m.TotalUncompressedBytes += fr.Written
		res.Files = append(res.Files, fr)
		if err != nil {
			return abort(fmt.Errorf("write %s: %w", tmp, err))
		}
		if failure, skipped := fr.Skipped(); skipped {
			a.log.Warn("failed to read file, skipping",
				zap.String("path", path),
				zap.String("stage", string(failure.Stage)),
				zap.Error(failure.Err))
			m.Skipped = append(m.Skipped, SkipEntry{
				Path:  path,
				Stage: failure.Stage,
				Error: failure.Err.Error(),
			})
			continue
		}
		m.FilesProcessed++
		m.PerFile = append(m.PerFile, FileEntry{Path: path, Size: fr.Size, SHA256: fr.SHA256})
	}

	if err := zw.Close(); err != nil {
		return abort(fmt.Errorf("finish gzip stream %s: %w", tmp, err))
	}
	if err := f.Sync(); err != nil {
		return abort(fmt.Errorf("fsync %s: %w", tmp, err))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := util.ReplaceFile(tmp, a.opts.Output); err != nil {
		os.Remove(tmp)
		return nil, err
	}

	if info, err := os.Stat(a.opts.Output); err == nil {
		size := info.Size()
		m.CompressedSizeBytes = &size
	} else {
		a.log.Warn("could not stat output", zap.String("path", a.opts.Output), zap.Error(err))
	}

	if a.opts.ManifestPath != "" {
		if err := m.Save(a.opts.ManifestPath); err != nil {
			return res, fmt.Errorf("write manifest %s: %w", a.opts.ManifestPath, err)
		}
	}
	return res, nil
}

// processFile stats, hashes and appends one candidate. Per-file problems are
// recorded on the returned FileResult; the error is only set when writing to
// the output stream failed, which ends the run.
func (a *Aggregator) processFile(w io.Writer, path string, buf []byte) (FileResult, error) {
	fr := FileResult{Path: path}

	if info, err := os.Stat(path); err == nil {
		size := info.Size()
		fr.Size = &size
	} else {
		fr.fail(StageStat, err)
		a.log.Warn("could not stat file", zap.String("path", path), zap.Error(err))
	}

	if hash, err := util.GetFileHash(path); err == nil {
		fr.SHA256 = &hash
	} else {
		fr.fail(StageHash, err)
		a.log.Warn("could not hash file", zap.String("path", path), zap.Error(err))
	}

	r, err := util.OpenInput(path)
	if err != nil {
		if errors.Is(err, util.ErrCorruptGzip) {
			fr.fail(StageDecompress, err)
		} else {
			fr.fail(StageOpen, err)
		}
		return fr, nil
	}
	defer r.Close()

	written, readErr, writeErr := copyChunks(w, r, buf)
	fr.Written = written
	if writeErr != nil {
		return fr, writeErr
	}
	if readErr != nil {
		if errors.Is(readErr, util.ErrCorruptGzip) {
			fr.fail(StageDecompress, readErr)
		} else {
			fr.fail(StageRead, readErr)
		}
	}
	return fr, nil
}

// copyChunks copies src to dst through buf, keeping read and write errors
// apart.
func copyChunks(dst io.Writer, src io.Reader, buf []byte) (written int64, readErr, writeErr error) {
	for {
		n, err := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, nil, werr
			}
			if w != n {
				return written, nil, io.ErrShortWrite
			}
		}
		if err == io.EOF {
			return written, nil, nil
		}
		if err != nil {
			return written, err, nil
		}
	}
}
