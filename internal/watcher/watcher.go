package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"static-server/internal/types"
)

// Watch polls root every interval and calls onChange with the sorted list of
// added, modified and removed paths. The first scan is the baseline and
// never triggers onChange. Watch returns when ctx is done.
func Watch(ctx context.Context, root string, interval time.Duration, onChange func(snap types.Snapshot, changed []string)) error {
	last, err := Scan(root)
	if err != nil {
		return fmt.Errorf("initial scan of %s: %w", root, err)
	}

	logrus.WithFields(logrus.Fields{
		"root":     root,
		"files":    len(last),
		"interval": interval,
	}).Info("Static root watcher started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Static root watcher stopped")
			return nil
		case <-ticker.C:
		}

		current, err := Scan(root)
		if err != nil {
			logrus.WithError(err).Warn("Failed to scan static root")
			continue
		}

		changed := Diff(last, current)
		if len(changed) == 0 {
			continue
		}

		logrus.WithFields(logrus.Fields{
			"previousCount": len(last),
			"currentCount":  len(current),
			"changed":       len(changed),
		}).Debug("Static root changed")

		onChange(current, changed)
		last = current
	}
}

// Scan walks root and stamps every regular file. Dot-directories such as
// .git are skipped.
func Scan(root string) (types.Snapshot, error) {
	snap := make(types.Snapshot)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Files can vanish mid-walk while an editor saves.
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if path != root && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		snap[filepath.ToSlash(rel)] = types.FileStamp{
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Diff returns the sorted paths that differ between two snapshots
func Diff(prev, next types.Snapshot) []string {
	var changed []string
	for path, stamp := range next {
		old, ok := prev[path]
		if !ok || old.Size != stamp.Size || !old.ModTime.Equal(stamp.ModTime) {
			changed = append(changed, path)
		}
	}
	for path := range prev {
		if _, ok := next[path]; !ok {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}
