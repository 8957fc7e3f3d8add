package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/openspec-remove/internal/fsops"
	"github.com/ruminaider/openspec-remove/internal/markers"
)

// Printer writes one line per processed path to out and failures to errOut.
// Colors are only emitted when the writer is a color-capable terminal.
type Printer struct {
	out    io.Writer
	errOut io.Writer

	ok    lipgloss.Style
	muted lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	bold  lipgloss.Style
}

// New returns a Printer writing to out and errOut.
func New(out, errOut io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	re := lipgloss.NewRenderer(errOut)
	return &Printer{
		out:    out,
		errOut: errOut,
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")),
		muted:  r.NewStyle().Faint(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:   re.NewStyle().Foreground(lipgloss.Color("1")),
		bold:   r.NewStyle().Bold(true),
	}
}

// Discard returns a Printer that drops everything.
func Discard() *Printer {
	return New(io.Discard, io.Discard)
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) errLine(format string, args ...any) {
	fmt.Fprintf(p.errOut, format+"\n", args...)
}

// Start announces the project being cleaned.
func (p *Printer) Start(root string) {
	p.line("Removing OpenSpec files from %s", root)
}

// Instruction reports the outcome of stripping one instruction file. A
// non-nil err goes to the error stream before the outcome line.
func (p *Printer) Instruction(path string, o markers.Outcome, err error) {
	if err != nil {
		p.errLine("%s %v", p.fail.Render("Error:"), err)
	}
	switch o {
	case markers.Missing:
		p.line("%s %s", p.muted.Render("Skipped (missing):"), path)
	case markers.NoMarker:
		p.line("No OpenSpec block found in %s", path)
	case markers.Stripped:
		p.line("%s %s", p.ok.Render("Removed OpenSpec block from"), path)
	case markers.Deleted:
		p.line("%s %s", p.ok.Render("Removed OpenSpec block and deleted empty file"), path)
	case markers.Incomplete:
		p.line("%s %s; markers may be unmatched.", p.warn.Render("Could not fully remove block in"), path)
	}
}

// Removal reports one RemoveMany item.
func (p *Printer) Removal(it fsops.Item) {
	switch it.Status {
	case fsops.Removed:
		p.line("%s %s", p.ok.Render("Removed"), it.Path)
	case fsops.Missing:
		p.line("%s %s", p.muted.Render("Skipped (missing):"), it.Path)
	case fsops.Failed:
		p.errLine("%s %s: %v", p.fail.Render("Failed to remove"), it.Path, it.Err)
	}
}

// Prune reports one PruneEmpty item. Non-empty directories are left quietly.
func (p *Printer) Prune(it fsops.Item) {
	switch it.Status {
	case fsops.Removed:
		p.line("%s %s", p.ok.Render("Removed empty directory"), it.Path)
	case fsops.Failed:
		p.errLine("%s %s: %v", p.fail.Render("Could not prune"), it.Path, it.Err)
	}
}

// Summary prints the closing line.
func (p *Printer) Summary(format string, args ...any) {
	p.line("%s", p.bold.Render(fmt.Sprintf(format, args...)))
}

// Note prints an informational line.
func (p *Printer) Note(format string, args ...any) {
	p.line(format, args...)
}
