package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruminaider/openspec-remove/internal/catalog"
	"github.com/ruminaider/openspec-remove/internal/fsops"
	"github.com/ruminaider/openspec-remove/internal/markers"
	"github.com/ruminaider/openspec-remove/internal/paths"
	"github.com/ruminaider/openspec-remove/internal/report"
)

var (
	ErrProjectNotFound = errors.New("project path does not exist")
	ErrProjectNotDir   = errors.New("project path is not a directory")
)

// RemoveOptions configures Remove. Zero values fall back to the embedded
// catalog, the real filesystem, $CODEX_HOME and a silent printer.
type RemoveOptions struct {
	ProjectDir       string
	CodexHome        string
	InstructionsOnly bool
	Catalog          *catalog.Catalog
	Deleter          fsops.Deleter
	Report           *report.Printer
}

// InstructionResult is the outcome for one instruction file.
type InstructionResult struct {
	Path    string
	Outcome markers.Outcome
	Err     error
}

// RemoveResult summarizes a Remove run.
type RemoveResult struct {
	ProjectDir   string
	Instructions []InstructionResult
	Updated      int // instruction files stripped or deleted
	Project      fsops.Summary
	Codex        fsops.Summary
	Pruned       []fsops.Item
}

// ResolveProjectDir expands ~, makes dir absolute, resolves symlinks and
// checks that it names an existing directory.
func ResolveProjectDir(dir string) (string, error) {
	abs, err := filepath.Abs(paths.ExpandHome(dir))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrProjectNotFound, abs)
		}
		return "", fmt.Errorf("checking %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrProjectNotDir, abs)
	}
	return abs, nil
}

// Remove strips the OpenSpec block from the project's instruction files and,
// unless InstructionsOnly is set, deletes every catalogued artifact and prunes
// the integration directories left empty. Only an invalid project directory
// or catalog is returned as an error; per-path problems are reported and
// recorded in the result.
func Remove(opts RemoveOptions) (*RemoveResult, error) {
	root, err := ResolveProjectDir(opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	cat, d, out := opts.Catalog, opts.Deleter, opts.Report

	result := &RemoveResult{ProjectDir: root}
	out.Start(root)

	for _, path := range cat.InstructionFiles(root) {
		outcome, err := markers.StripManagedBlock(path, markers.Start, markers.End)
		out.Instruction(path, outcome, err)
		result.Instructions = append(result.Instructions, InstructionResult{Path: path, Outcome: outcome, Err: err})
		if outcome.Changed() {
			result.Updated++
		}
	}

	if opts.InstructionsOnly {
		out.Summary("Cleanup complete. Updated %d instruction file(s).", result.Updated)
		return result, nil
	}

	result.Project = removeAll(d, out, cat.ProjectTargets(root))

	codexHome := opts.CodexHome
	result.Codex = removeAll(d, out, cat.CodexTargets(codexHome))

	result.Pruned = fsops.PruneEmpty(d, cat.PruneDirs(root, codexHome))
	for _, it := range result.Pruned {
		out.Prune(it)
	}

	out.Summary("Cleanup complete. Removed %d project item(s), %d Codex item(s), and updated %d instruction file(s).",
		result.Project.Removed, result.Codex.Removed, result.Updated)
	out.Note("You may manually remove any remaining empty folders if desired.")
	return result, nil
}

// Pending lists what Remove would touch with the same options: instruction
// files holding a managed block, then the catalogued project and Codex paths
// that exist. Nothing is modified.
func Pending(opts RemoveOptions) ([]string, error) {
	root, err := ResolveProjectDir(opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}

	var pending []string
	for _, path := range opts.Catalog.InstructionFiles(root) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if _, outcome := markers.Strip(string(data), markers.Start, markers.End); outcome.Changed() {
			pending = append(pending, path)
		}
	}
	if opts.InstructionsOnly {
		return pending, nil
	}

	targets := append(opts.Catalog.ProjectTargets(root), opts.Catalog.CodexTargets(opts.CodexHome)...)
	for _, path := range targets {
		if _, err := opts.Deleter.Lstat(path); err == nil {
			pending = append(pending, path)
		}
	}
	return pending, nil
}

func (opts *RemoveOptions) setDefaults() error {
	if opts.Catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return err
		}
		opts.Catalog = cat
	}
	if opts.Deleter == nil {
		opts.Deleter = fsops.OSDeleter{}
	}
	if opts.Report == nil {
		opts.Report = report.Discard()
	}
	if opts.CodexHome == "" {
		opts.CodexHome = paths.CodexHome()
	}
	return nil
}

func removeAll(d fsops.Deleter, out *report.Printer, targets []string) fsops.Summary {
	s := fsops.RemoveMany(d, targets)
	for _, it := range s.Items {
		out.Removal(it)
	}
	return s
}
