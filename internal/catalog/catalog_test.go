package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/openspec-remove/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	assert.Equal(t, "openspec", c.CoreDir)
	assert.Equal(t, []string{"proposal", "apply", "archive"}, c.Commands)
	assert.Len(t, c.Tools, 8)
	assert.Equal(t, 28, c.Size())
}

func TestProjectTargets(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	root := filepath.FromSlash("/work/app")
	targets := c.ProjectTargets(root)
	require.Len(t, targets, 25)

	assert.Equal(t, filepath.Join(root, "openspec"), targets[0])
	assert.Equal(t, filepath.Join(root, ".claude", "commands", "openspec", "proposal.md"), targets[1])
	assert.Contains(t, targets, filepath.Join(root, ".factory", "commands", "openspec-apply.md"))
	assert.Contains(t, targets, filepath.Join(root, ".cursor", "commands", "openspec-archive.md"))
	assert.Contains(t, targets, filepath.Join(root, ".opencode", "commands", "openspec-proposal.md"))
	assert.Contains(t, targets, filepath.Join(root, ".windsurf", "workflows", "openspec-apply.md"))
	assert.Contains(t, targets, filepath.Join(root, ".kilocode", "workflows", "openspec-archive.md"))
	assert.Contains(t, targets, filepath.Join(root, ".amazonq", "prompts", "openspec-proposal.md"))
	assert.Equal(t, filepath.Join(root, ".github", "prompts", "openspec-archive.prompt.md"), targets[24])

	// Deterministic.
	assert.Equal(t, targets, c.ProjectTargets(root))
}

func TestCodexTargets(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	home := filepath.FromSlash("/home/me/.codex")
	assert.Equal(t, []string{
		filepath.Join(home, "prompts", "openspec-proposal.md"),
		filepath.Join(home, "prompts", "openspec-apply.md"),
		filepath.Join(home, "prompts", "openspec-archive.md"),
	}, c.CodexTargets(home))
}

func TestInstructionFiles(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	root := filepath.FromSlash("/work/app")
	assert.Equal(t, []string{
		filepath.Join(root, "AGENTS.md"),
		filepath.Join(root, "CLAUDE.md"),
	}, c.InstructionFiles(root))
}

func TestPruneDirs(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	root := filepath.FromSlash("/work/app")
	home := filepath.FromSlash("/home/me/.codex")
	dirs := c.PruneDirs(root, home)
	require.Len(t, dirs, 17)

	assert.Equal(t, filepath.Join(home, "prompts"), dirs[0])
	assert.Equal(t, filepath.Join(root, ".claude", "commands", "openspec"), dirs[1])
	assert.NotContains(t, dirs, root)
	assert.NotContains(t, dirs, home)
	assert.NotContains(t, dirs, filepath.Join(root, ".github"))
	assert.Contains(t, dirs, filepath.Join(root, ".github", "prompts"))

	// Every directory is listed before its parent.
	index := make(map[string]int, len(dirs))
	for i, d := range dirs {
		index[d] = i
	}
	for i, d := range dirs {
		if parent, ok := index[filepath.Dir(d)]; ok {
			assert.Less(t, i, parent, "%s must precede its parent", d)
		}
	}
}

func TestPruneDirs_SharedParentListedOnce(t *testing.T) {
	c, err := catalog.Parse([]byte(`
core_dir: openspec
commands: [a]
tools:
  - {name: one, dir: .x/one, pattern: "{name}.md"}
  - {name: two, dir: .x/two, pattern: "{name}.md"}
`))
	require.NoError(t, err)

	root := filepath.FromSlash("/r")
	assert.Equal(t, []string{
		filepath.Join(root, ".x", "one"),
		filepath.Join(root, ".x", "two"),
		filepath.Join(root, ".x"),
	}, c.PruneDirs(root, "/unused"))
	assert.Empty(t, c.CodexTargets("/unused"))
	assert.Equal(t, 3, c.Size())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"malformed", "tools: [", "parsing catalog"},
		{"no core dir", "commands: [a]", "core_dir is required"},
		{"absolute core dir", "core_dir: /etc", "must be relative"},
		{"escaping tool dir", "core_dir: x\ntools:\n  - {name: t, dir: ../up, pattern: \"{name}\"}", "escapes"},
		{"tool without name", "core_dir: x\ntools:\n  - {dir: d, pattern: \"{name}\"}", "name is required"},
		{"pattern without placeholder", "core_dir: x\ntools:\n  - {name: t, dir: d, pattern: fixed.md}", "must contain {name}"},
		{"codex pattern without placeholder", "core_dir: x\ncodex: {dir: prompts, pattern: fixed.md}", "codex"},
		{"codex without dir", "core_dir: x\ncodex: {pattern: \"{name}.md\"}", "codex: dir"},
		{"codex dir escaping", "core_dir: x\ncodex: {dir: .., pattern: \"{name}.md\"}", "escapes"},
		{"codex absolute dir", "core_dir: x\ncodex: {dir: /tmp, pattern: \"{name}.md\"}", "must be relative"},
		{"codex pattern with separator", "core_dir: x\ncodex: {dir: prompts, pattern: \"../{name}.md\"}", "plain file name"},
		{"tool pattern with separator", "core_dir: x\ntools:\n  - {name: t, dir: d, pattern: \"sub/{name}.md\"}", "plain file name"},
		{"tool pattern with backslash", "core_dir: x\ntools:\n  - {name: t, dir: d, pattern: \"..\\\\{name}.md\"}", "plain file name"},
		{"command with separator", "core_dir: x\ncommands: [../etc]", "plain file name"},
		{"command dot-dot", "core_dir: x\ncommands: [\"..\"]", "plain file name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("core_dir: .spec\ncommands: [x]\n"), 0644))

	c, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/p", ".spec")}, c.ProjectTargets("/p"))

	_, err = catalog.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading catalog")
}
