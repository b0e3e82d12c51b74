// Package segmenter greedily splits an ordered list of packing files into segment-sized groups
// (§4.9), honouring the packer's two special segment_limit values alongside ordinary byte budgets.
package segmenter

import "strings"

// File is the minimal shape segmenter needs from a packing file: its name and content length.
type File struct {
	Name string
	Size int64
}

// estimatedCost is a file's contribution to a segment's running total: name length + content size
// + 5 bytes of fixed per-entry overhead, except META-INF entries which are free (they are expected
// to be tiny and JAR tooling conventionally wants them first regardless of budget pressure).
func estimatedCost(f File) int64 {
	if strings.HasPrefix(f.Name, "META-INF") {
		return 0
	}

	return int64(len(f.Name)) + f.Size + 5
}

// NoLimit and OneClassPerSegment are the two special segment_limit values §4.9 calls out:
// NoLimit disables splitting entirely (one segment regardless of input size), OneClassPerSegment
// puts each class in its own segment while still grouping META-INF entries for free.
const (
	NoLimit            int64 = -1
	OneClassPerSegment int64 = 0
)

// Split partitions files into one or more segments, each a contiguous run of the input in order,
// such that no segment's running estimated cost exceeds limit — except a segment's first entry,
// which is always accepted regardless of size (a single huge file still gets its own segment
// rather than failing to fit anywhere).
func Split(files []File, limit int64) [][]File {
	if limit == NoLimit {
		if len(files) == 0 {
			return nil
		}

		return [][]File{files}
	}

	if limit == OneClassPerSegment {
		return splitOnePerSegment(files)
	}

	var segments [][]File
	var current []File
	var running int64

	for _, f := range files {
		cost := estimatedCost(f)

		if len(current) > 0 && running+cost > limit {
			segments = append(segments, current)
			current = nil
			running = 0
		}

		current = append(current, f)
		running += cost

		if len(current) == 1 {
			// The first entry of a fresh segment is free: its cost was added above (so a
			// caller inspecting mid-split running totals sees it), but then the running
			// total resets to 0 so a single oversized first file never blocks the rest of
			// the segment from filling up.
			running = 0
		}
	}

	if len(current) > 0 {
		segments = append(segments, current)
	}

	return segments
}

func splitOnePerSegment(files []File) [][]File {
	var segments [][]File
	var metaGroup []File

	for _, f := range files {
		if strings.HasPrefix(f.Name, "META-INF") {
			metaGroup = append(metaGroup, f)

			continue
		}

		group := append(append([]File{}, metaGroup...), f)
		segments = append(segments, group)
		metaGroup = nil
	}

	if len(metaGroup) > 0 {
		segments = append(segments, metaGroup)
	}

	return segments
}
