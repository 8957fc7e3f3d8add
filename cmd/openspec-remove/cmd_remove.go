package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/openspec-remove/internal/catalog"
	"github.com/ruminaider/openspec-remove/internal/commands"
	"github.com/ruminaider/openspec-remove/internal/paths"
	"github.com/ruminaider/openspec-remove/internal/report"
	"github.com/spf13/cobra"
)

var (
	removeInstructionsOnly bool
	removeCatalogFile      string
	removeCodexHome        string
	removeConfirm          bool
)

// confirmRemoval lists targets and asks before touching anything. Replaced in
// tests.
var confirmRemoval = func(projectDir string, targets []string, instructionsOnly bool) (bool, error) {
	title := fmt.Sprintf("Remove OpenSpec files from %s?", projectDir)
	if instructionsOnly {
		title = fmt.Sprintf("Remove the OpenSpec block from AGENTS.md and CLAUDE.md in %s?", projectDir)
	}
	var confirm bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(describeTargets(targets)).
				Affirmative("Yes, remove").
				Negative("Cancel").
				Value(&confirm),
		),
	).Run()
	return confirm, err
}

// describeTargets renders the confirm form's body.
func describeTargets(targets []string) string {
	if len(targets) == 0 {
		return "Nothing to remove."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The following %d item(s) will be removed or updated:\n", len(targets))
	for _, t := range targets {
		fmt.Fprintf(&b, "\n  - %s", t)
	}
	return b.String()
}

func runRemove(cmd *cobra.Command, args []string) error {
	projectDir, err := commands.ResolveProjectDir(args[0])
	if err != nil {
		return err
	}

	cat, err := catalog.Default()
	if removeCatalogFile != "" {
		cat, err = catalog.Load(paths.ExpandHome(removeCatalogFile))
	}
	if err != nil {
		return err
	}

	codexHome := paths.CodexHome()
	if removeCodexHome != "" {
		codexHome = paths.ExpandHome(removeCodexHome)
	}

	opts := commands.RemoveOptions{
		ProjectDir:       projectDir,
		CodexHome:        codexHome,
		InstructionsOnly: removeInstructionsOnly,
		Catalog:          cat,
	}

	if removeConfirm {
		targets, err := commands.Pending(opts)
		if err != nil {
			return err
		}
		ok, err := confirmRemoval(projectDir, targets, removeInstructionsOnly)
		if err != nil || !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	opts.Report = report.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
	_, err = commands.Remove(opts)
	return err
}

func init() {
	rootCmd.Flags().BoolVar(&removeInstructionsOnly, "instructions-only", false, "Only remove OpenSpec managed blocks from AGENTS.md and CLAUDE.md")
	rootCmd.Flags().StringVar(&removeCatalogFile, "catalog", "", "YAML catalog of artifacts to remove (default: built-in)")
	rootCmd.Flags().StringVar(&removeCodexHome, "codex-home", "", "Codex config directory (default: $CODEX_HOME or ~/.codex)")
	rootCmd.Flags().BoolVar(&removeConfirm, "confirm", false, "Ask for confirmation before removing anything")
}
