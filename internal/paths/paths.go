package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// CodexHomeEnv overrides the Codex configuration directory.
const CodexHomeEnv = "CODEX_HOME"

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// CodexHome returns $CODEX_HOME, or ~/.codex when unset or empty.
func CodexHome() string {
	if dir := os.Getenv(CodexHomeEnv); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(home(), ".codex")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" {
		return home()
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return filepath.Join(home(), p[2:])
	}
	return p
}
