// Package filestore implements the flat-file persistence adapters: a
// tabular store (delimited records under a fixed column header) and a line
// store (one JSON object per line).
//
// Both stores load and save whole collections; nothing is cached between
// calls. A per-store mutex serializes the load-modify-save sequence within
// this process. Across processes there is no isolation: the last writer
// wins and an earlier writer's changes are silently lost.
package filestore

import (
	"fmt"
	"os"
)

// ensureFile creates path with the given initial content when it does not
// exist yet. Called before every read so the first access never fails on a
// missing backing file.
func ensureFile(path, initial string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}
