package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// namePlaceholder is substituted with each command name in a Pattern.
const namePlaceholder = "{name}"

// Catalog is the fixed list of artifacts an OpenSpec install leaves behind.
// All paths are relative; nothing here touches the filesystem.
type Catalog struct {
	Version      string   `yaml:"version"`
	CoreDir      string   `yaml:"core_dir"`
	Commands     []string `yaml:"commands"`
	Instructions []string `yaml:"instructions"`
	Tools        []Tool   `yaml:"tools"`
	Codex        Codex    `yaml:"codex"`
}

// Tool is one editor/agent integration and where its command files live.
type Tool struct {
	Name    string `yaml:"name"`
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
	// KeepParents limits pruning to Dir itself, leaving its ancestors alone
	// (.github holds far more than prompts).
	KeepParents bool `yaml:"keep_parent,omitempty"`
}

// Codex describes prompt files installed under the Codex home rather than
// the project.
type Codex struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if strings.TrimSpace(c.CoreDir) == "" {
		return errors.New("core_dir is required")
	}
	if err := relative("core_dir", c.CoreDir); err != nil {
		return err
	}
	for _, name := range c.Commands {
		if err := plainName("command", name); err != nil {
			return err
		}
	}
	for i, t := range c.Tools {
		if t.Name == "" {
			return fmt.Errorf("tools[%d]: name is required", i)
		}
		if t.Dir == "" {
			return fmt.Errorf("tool %s: dir is required", t.Name)
		}
		if err := relative("tool "+t.Name, t.Dir); err != nil {
			return err
		}
		if err := validPattern("tool "+t.Name, t.Pattern); err != nil {
			return err
		}
	}
	if c.Codex.Pattern != "" {
		if c.Codex.Dir == "" {
			return errors.New("codex: dir is required with a pattern")
		}
		if err := relative("codex: dir", c.Codex.Dir); err != nil {
			return err
		}
		if err := validPattern("codex", c.Codex.Pattern); err != nil {
			return err
		}
	}
	return nil
}

// validPattern requires the name placeholder and a single path element, so
// every expanded file lands directly in its tool directory.
func validPattern(field, pattern string) error {
	if !strings.Contains(pattern, namePlaceholder) {
		return fmt.Errorf("%s: pattern %q must contain %s", field, pattern, namePlaceholder)
	}
	return plainName(field+": pattern", pattern)
}

func plainName(field, s string) error {
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." || strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s: %q must be a plain file name", field, s)
	}
	return nil
}

// relative rejects entries that would escape the root they are joined to.
func relative(field, p string) error {
	if filepath.IsAbs(p) {
		return fmt.Errorf("%s: %q must be relative", field, p)
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s: %q escapes the project root", field, p)
	}
	return nil
}

func (c *Catalog) files(dir, pattern string) []string {
	out := make([]string, 0, len(c.Commands))
	for _, name := range c.Commands {
		out = append(out, filepath.Join(dir, strings.ReplaceAll(pattern, namePlaceholder, name)))
	}
	return out
}

// ProjectTargets returns every project-scoped artifact under root: the core
// directory first, then each tool's command files in catalog order.
func (c *Catalog) ProjectTargets(root string) []string {
	targets := []string{filepath.Join(root, filepath.FromSlash(c.CoreDir))}
	for _, t := range c.Tools {
		targets = append(targets, c.files(filepath.Join(root, filepath.FromSlash(t.Dir)), t.Pattern)...)
	}
	return targets
}

// CodexPromptsDir returns the directory under codexHome holding prompt files.
func (c *Catalog) CodexPromptsDir(codexHome string) string {
	return filepath.Join(codexHome, filepath.FromSlash(c.Codex.Dir))
}

// CodexTargets returns the Codex prompt files under codexHome.
func (c *Catalog) CodexTargets(codexHome string) []string {
	if c.Codex.Pattern == "" {
		return nil
	}
	return c.files(c.CodexPromptsDir(codexHome), c.Codex.Pattern)
}

// InstructionFiles returns the shared instruction files that carry a managed
// block.
func (c *Catalog) InstructionFiles(root string) []string {
	out := make([]string, 0, len(c.Instructions))
	for _, name := range c.Instructions {
		out = append(out, filepath.Join(root, filepath.FromSlash(name)))
	}
	return out
}

// Size is the number of paths ProjectTargets and CodexTargets yield together.
func (c *Catalog) Size() int {
	n := 1 + len(c.Tools)*len(c.Commands)
	if c.Codex.Pattern != "" {
		n += len(c.Commands)
	}
	return n
}

// PruneDirs returns the directories worth removing once emptied, ordered so
// every directory comes before its parent. The Codex prompts directory leads;
// root and codexHome themselves are never included.
func (c *Catalog) PruneDirs(root, codexHome string) []string {
	var dirs []string
	if c.Codex.Pattern != "" {
		dirs = append(dirs, c.CodexPromptsDir(codexHome))
	}

	var project []string
	seen := make(map[string]bool)
	for _, t := range c.Tools {
		rel := filepath.Clean(filepath.FromSlash(t.Dir))
		for rel != "." && rel != string(filepath.Separator) {
			if !seen[rel] {
				seen[rel] = true
				project = append(project, rel)
			}
			if t.KeepParents {
				break
			}
			rel = filepath.Dir(rel)
		}
	}
	slices.SortStableFunc(project, func(a, b string) int {
		return depth(b) - depth(a)
	})

	for _, rel := range project {
		dirs = append(dirs, filepath.Join(root, rel))
	}
	return dirs
}

func depth(rel string) int {
	return strings.Count(rel, string(filepath.Separator))
}
