package fsops

import (
	"errors"
	"fmt"
	"io/fs"
)

// Status is what happened to a single path.
type Status int

const (
	Removed  Status = iota
	Missing         // nothing there to remove
	Failed          // delete or inspection error; see Item.Err
	NotEmpty        // prune only: directory still has entries
)

func (s Status) String() string {
	switch s {
	case Removed:
		return "removed"
	case Missing:
		return "missing"
	case Failed:
		return "failed"
	case NotEmpty:
		return "not_empty"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Item records the result for one path.
type Item struct {
	Path   string
	Status Status
	Err    error
}

// Summary aggregates a RemoveMany run.
type Summary struct {
	Items   []Item
	Removed int
	Missing int
	Failed  int
}

func (s *Summary) add(it Item) {
	s.Items = append(s.Items, it)
	switch it.Status {
	case Removed:
		s.Removed++
	case Missing:
		s.Missing++
	case Failed:
		s.Failed++
	}
}

// RemoveMany deletes each path: directories recursively, files and symlinks
// by unlinking. Existence is checked per path at call time. Errors are
// recorded on the item and never stop the batch.
func RemoveMany(d Deleter, paths []string) Summary {
	var s Summary
	for _, p := range paths {
		s.add(removeOne(d, p))
	}
	return s
}

func removeOne(d Deleter, path string) Item {
	info, err := d.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Item{Path: path, Status: Missing}
	}
	if err != nil {
		return Item{Path: path, Status: Failed, Err: err}
	}

	if info.IsDir() {
		err = d.RemoveAll(path)
	} else {
		err = d.Remove(path)
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Vanished between the check and the delete.
		return Item{Path: path, Status: Missing}
	case err != nil:
		return Item{Path: path, Status: Failed, Err: err}
	}
	return Item{Path: path, Status: Removed}
}

// PruneEmpty removes each directory in dirs that currently exists and has no
// entries. Callers order dirs children first. Anything else is skipped:
// missing paths and non-directories silently, non-empty directories and
// failures as items with the matching status.
func PruneEmpty(d Deleter, dirs []string) []Item {
	var items []Item
	for _, dir := range dirs {
		info, err := d.Lstat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		entries, err := d.ReadDir(dir)
		if err != nil {
			items = append(items, Item{Path: dir, Status: Failed, Err: err})
			continue
		}
		if len(entries) > 0 {
			items = append(items, Item{Path: dir, Status: NotEmpty})
			continue
		}
		if err := d.Remove(dir); err != nil {
			items = append(items, Item{Path: dir, Status: Failed, Err: err})
			continue
		}
		items = append(items, Item{Path: dir, Status: Removed})
	}
	return items
}
