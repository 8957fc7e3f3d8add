package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "openspec-remove <project_path>",
	Short: "Remove OpenSpec files from a project",
	Long: `openspec-remove deletes the core openspec/ directory plus integration files for
Codex and project-level agent commands (Claude Code, Cursor, OpenCode, Factory
Droid, Windsurf, Kilo Code, Amazon Q, GitHub Copilot). For AGENTS.md and
CLAUDE.md it removes only the managed OpenSpec block so custom instructions
remain intact.`,
	Args:         cobra.ExactArgs(1),
	Version:      version,
	SilenceUsage: true,

	// No subcommands: every positional argument is a project path, including
	// directories named "version", "help" or "completion".
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE:              runRemove,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
