package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Veraticus/walletscore/internal/common"
)

// DiscoverFiles lists the regular files in dir, largest first, and returns at
// most maxFiles of them as sources. A maxFiles of zero or less keeps every file.
// Files of unsupported formats are still returned; the normalizer reports and
// skips them.
func DiscoverFiles(dir string, maxFiles int) ([]Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrDataDirMissing, dir)
		}
		return nil, fmt.Errorf("failed to stat data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", common.ErrDataDirMissing, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	files := make([]*FileSource, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, infoErr := entry.Info()
		if infoErr != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), infoErr)
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, NewFileSource(filepath.Join(dir, entry.Name()), fi.Size()))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrNoFiles, dir)
	}

	// Largest first; names break ties so runs are repeatable.
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Size != files[j].Size {
			return files[i].Size > files[j].Size
		}
		return files[i].Path < files[j].Path
	})

	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
	}

	sources := make([]Source, len(files))
	for i, f := range files {
		sources[i] = f
	}
	return sources, nil
}
