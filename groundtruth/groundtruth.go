// Package groundtruth reads ground-truth group assignments for the nodes of
// an edge-list workload.
//
// The file format is one assignment per line, "<node> <group>", separated by
// any whitespace. Blank lines and lines starting with '#' are ignored.
package groundtruth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dendrascience/edge-aggregate/util"
)

// DefaultFileName is the ground-truth file shipped in the data directory.
const DefaultFileName = "groupings.gt.txt"

var (
	ErrMalformedLine         = errors.New("malformed ground truth line")
	ErrConflictingAssignment = errors.New("node assigned to more than one group")
)

// GroundTruth holds both directions of the node/group mapping.
type GroundTruth struct {
	NodeGroup  map[string]string
	GroupNodes map[string][]string // nodes in first-seen order
}

// Read parses ground-truth assignments from r.
func Read(r io.Reader) (*GroundTruth, error) {
	gt := &GroundTruth{
		NodeGroup:  make(map[string]string),
		GroupNodes: make(map[string][]string),
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), util.ChunkSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedLine, lineNo, line)
		}
		node, group := fields[0], fields[1]
		if prev, ok := gt.NodeGroup[node]; ok {
			if prev != group {
				return nil, fmt.Errorf("%w: line %d: node %s in %s and %s",
					ErrConflictingAssignment, lineNo, node, prev, group)
			}
			continue
		}
		gt.NodeGroup[node] = group
		gt.GroupNodes[group] = append(gt.GroupNodes[group], node)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return gt, nil
}

// ReadFile parses the ground-truth file at path, decompressing it first if
// its name ends in ".gz".
func ReadFile(path string) (*GroundTruth, error) {
	rc, err := util.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	gt, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return gt, nil
}

// Groups returns the group ids in sorted order.
func (gt *GroundTruth) Groups() []string {
	groups := make([]string, 0, len(gt.GroupNodes))
	for g := range gt.GroupNodes {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// Largest returns up to n group ids ordered by descending size, ties broken
// by group id.
func (gt *GroundTruth) Largest(n int) []string {
	groups := gt.Groups()
	slices.SortStableFunc(groups, func(a, b string) int {
		return len(gt.GroupNodes[b]) - len(gt.GroupNodes[a])
	})
	if n >= 0 && n < len(groups) {
		groups = groups[:n]
	}
	return groups
}
