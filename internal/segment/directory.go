package segment

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	kvserrors "github.com/ignitekv/kvs/pkg/errors"
	"github.com/ignitekv/kvs/pkg/filesys"
)

// genPattern matches segment file names of the form `<digits>.log`.
// Anything else in the root directory — including a host-managed engine
// metadata file — is ignored silently, per spec §4.2.
var genPattern = regexp.MustCompile(`^(\d+)\.log$`)

// SortedGenerations enumerates root for segment files, parses their
// generation numbers, and returns them in ascending order.
func SortedGenerations(root string) ([]uint64, error) {
	names, err := filesys.ReadDir(filepath.Join(root, "*.log"))
	if err != nil {
		return nil, fmt.Errorf("list segment directory %s: %w", root, err)
	}

	gens := make([]uint64, 0, len(names))
	for _, name := range names {
		match := genPattern.FindStringSubmatch(filepath.Base(name))
		if match == nil {
			continue
		}
		gen, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil {
			continue
		}
		gens = append(gens, gen)
	}

	sort.Slice(gens, func(i, j int) bool { return gens[i] < gens[j] })
	return gens, nil
}

// LogPath returns the path of the segment file for generation gen under root.
func LogPath(root string, gen uint64) string {
	return filepath.Join(root, fmt.Sprintf("%d.log", gen))
}

// TempLogPath returns the path compaction writes its new segment under
// before it is renamed into place, so a crash mid-compaction never leaves
// a partially written file under the name recovery scans (spec §9's
// resolved open question — see SPEC_FULL.md §7.1).
func TempLogPath(root string, gen uint64) string {
	return filepath.Join(root, fmt.Sprintf("%d.log.tmp", gen))
}

// Delete removes the segment file for generation gen under root.
func Delete(root string, gen uint64) error {
	return filesys.DeleteFile(LogPath(root, gen))
}

// RenameIntoPlace atomically publishes a segment written under a temporary
// name (TempLogPath) to its final path, so a crash mid-compaction never
// leaves recovery looking at a partially written file under the name it
// scans for (spec §9's resolved open question — see SPEC_FULL.md §7.1).
func RenameIntoPlace(tmpPath, finalPath string) error {
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "Failed to rename compaction segment into place").
			WithPath(finalPath).
			WithFileName(filepath.Base(finalPath))
	}
	return nil
}
