package scm

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
)

type changeLog struct {
	XMLName xml.Name         `xml:"changelog"`
	Entries []changeLogEntry `xml:"entry"`
}

type changeLogEntry struct {
	Path      string    `xml:"path"`
	Timestamp time.Time `xml:"timestamp"`
}

// snapshotDir maps each file below dir to its modification time. A missing
// dir counts as empty, the CLI creates it on first retrieval. The CLI's own
// workspace dir is skipped, it is scratch space, not retrieved source.
func snapshotDir(dir string) (map[string]time.Time, error) {
	snapshot := map[string]time.Time{}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			if info.Name() == TopazCLIWorkspace {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		snapshot[rel] = info.ModTime()
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read target folder %q", dir)
	}
	return snapshot, nil
}

// writeChangeLog diffs two snapshots of the target folder into file. No
// differences produce an empty changelog document.
func writeChangeLog(file string, before, after map[string]time.Time) error {
	var entries []changeLogEntry
	for path, modTime := range after {
		prev, existed := before[path]
		if !existed || modTime.After(prev) {
			entries = append(entries, changeLogEntry{Path: path, Timestamp: modTime})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	doc, err := xml.MarshalIndent(changeLog{Entries: entries}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, append([]byte(xml.Header), doc...), 0644)
}
