package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruminaider/openspec-remove/internal/paths"
	"github.com/stretchr/testify/assert"
)

func TestCodexHome_Default(t *testing.T) {
	t.Setenv(paths.CodexHomeEnv, "")
	home, _ := os.UserHomeDir()
	assert.True(t, strings.HasPrefix(paths.CodexHome(), home))
	assert.True(t, strings.HasSuffix(paths.CodexHome(), ".codex"))
}

func TestCodexHome_Override(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.CodexHomeEnv, dir)
	assert.Equal(t, dir, paths.CodexHome())
}

func TestCodexHome_OverrideWithTilde(t *testing.T) {
	t.Setenv(paths.CodexHomeEnv, "~/custom-codex")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "custom-codex"), paths.CodexHome())
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	assert.Equal(t, home, paths.ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "src", "app"), paths.ExpandHome("~/src/app"))
	assert.Equal(t, "/abs/path", paths.ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", paths.ExpandHome("~user/x"))
}
