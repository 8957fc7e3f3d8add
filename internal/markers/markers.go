package markers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Start and End delimit the block OpenSpec writes into AGENTS.md and CLAUDE.md.
const (
	Start = "<!-- OPENSPEC:START -->"
	End   = "<!-- OPENSPEC:END -->"
)

// Outcome describes what StripManagedBlock did to a file.
type Outcome int

const (
	Missing    Outcome = iota // file absent, not a regular file, or unreadable
	NoMarker                  // no managed block present
	Stripped                  // block removed, remaining content rewritten
	Deleted                   // block removed, nothing left, file deleted
	Incomplete                // unbalanced markers or write failure; file untouched
)

func (o Outcome) String() string {
	switch o {
	case Missing:
		return "missing"
	case NoMarker:
		return "no_marker"
	case Stripped:
		return "stripped"
	case Deleted:
		return "deleted"
	case Incomplete:
		return "incomplete"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Changed reports whether the file on disk was modified.
func (o Outcome) Changed() bool {
	return o == Stripped || o == Deleted
}

type state int

const (
	outside state = iota
	inside
)

// Strip removes the managed block from content without touching the filesystem.
// The returned string is only meaningful when the outcome is Stripped (remaining
// content with a single trailing newline) or Deleted (empty). For any other
// outcome content is returned unchanged.
func Strip(content, start, end string) (string, Outcome) {
	if !strings.Contains(content, start) && !strings.Contains(content, end) {
		return content, NoMarker
	}

	var kept []string
	st := outside
	removed := false

	for _, line := range splitLines(content) {
		hasStart := strings.Contains(line, start)
		hasEnd := strings.Contains(line, end)

		switch {
		case hasStart && hasEnd:
			removed = true
			st = outside
		case hasStart:
			removed = true
			st = inside
		case st == inside:
			if hasEnd {
				st = outside
			}
		case hasEnd:
			// End marker with no start before it.
			return content, Incomplete
		default:
			kept = append(kept, line)
		}
	}

	if st == inside {
		return content, Incomplete
	}
	if !removed {
		return content, NoMarker
	}

	kept = trimBlank(kept)
	if len(kept) == 0 {
		return "", Deleted
	}
	return strings.Join(kept, "\n") + "\n", Stripped
}

// StripManagedBlock removes the block delimited by start and end from the file
// at path. Content outside the block is preserved byte for byte. The file is
// written at most once, and only after the whole file scanned cleanly; when no
// content remains the file is deleted instead.
//
// A non-nil error accompanies Missing (stat or read failure) and Incomplete
// (write or delete failure) and is meant for reporting, not for aborting the
// caller.
func StripManagedBlock(path, start, end string) (Outcome, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Missing, nil
	}
	if err != nil {
		return Missing, fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Missing, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Missing, fmt.Errorf("reading %s: %w", path, err)
	}

	content, outcome := Strip(string(data), start, end)
	switch outcome {
	case Stripped:
		// Write through symlinks rather than replacing them.
		target := path
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			target = resolved
		}
		if err := writeFileAtomic(target, []byte(content), info.Mode().Perm()); err != nil {
			return Incomplete, fmt.Errorf("writing %s: %w", path, err)
		}
	case Deleted:
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Incomplete, fmt.Errorf("deleting %s: %w", path, err)
		}
	}
	return outcome, nil
}

// splitLines splits on "\n" and drops the empty element produced by a
// trailing newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// writeFileAtomic replaces path with data via a temp file and rename so a
// failed write never leaves a partial file behind. A directory that refuses
// new files falls back to rewriting path in place.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if errors.Is(err, fs.ErrPermission) {
		return os.WriteFile(path, data, perm)
	}
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
