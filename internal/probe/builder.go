package probe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
)

// builder assembles one section's report text block by block. Command
// output appears under a "$ <command line>" marker; informational notes
// (missing tools, unreadable files) appear in parentheses. Failure causes
// are collected separately and surface as the probe's returned error, so a
// section can carry partial output and an error annotation at once.
type builder struct {
	sb   strings.Builder
	errs []string
}

// sep opens a new block: one blank line between blocks, none at the top.
func (b *builder) sep() {
	if b.sb.Len() > 0 {
		b.sb.WriteByte('\n')
	}
}

// marker writes the "$ cmd" line introducing a command's output.
func (b *builder) marker(cmdline string) {
	b.sb.WriteString("$ ")
	b.sb.WriteString(cmdline)
	b.sb.WriteByte('\n')
}

// raw writes verbatim output, normalizing the trailing newline. Empty
// output is made visible instead of leaving a dangling marker.
func (b *builder) raw(text string) {
	if strings.TrimSpace(text) == "" {
		b.note("no output")
		return
	}
	b.sb.WriteString(strings.TrimRight(text, "\n"))
	b.sb.WriteByte('\n')
}

// line writes one plain report line.
func (b *builder) line(s string) {
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

// note writes a parenthesized informational line.
func (b *builder) note(s string) {
	b.sb.WriteString("(")
	b.sb.WriteString(s)
	b.sb.WriteString(")\n")
}

// fail records a failure cause for the section's error annotation.
func (b *builder) fail(cause string) {
	b.errs = append(b.errs, cause)
}

// addCmd writes a command block: marker, then stdout truncated to head
// lines (0 = no cap). A non-nil command error is recorded as a failure
// while the partial output stays in the section.
func (b *builder) addCmd(res engine.CmdResult, head int) {
	b.sep()
	b.marker(res.Command.String())
	out := res.Stdout
	if head > 0 {
		out = headLines(out, head)
	}
	b.raw(out)
	if res.Err != nil {
		b.fail(engine.ExitSummary(res))
	}
}

// addFile writes a bounded file read as a "cat path" block. The file is
// read natively (no shell-out); an unreadable file is reported as a note,
// like a missing tool.
func (b *builder) addFile(path string) {
	b.sep()
	data, err := engine.ReadFileLimited(path)
	if err != nil {
		b.note(fmt.Sprintf("%s: not readable (%v)", path, err))
		return
	}
	b.marker("cat " + path)
	b.raw(string(data))
}

// addChain writes a fallback chain's outcome: the chosen command's block,
// or the chain's not-available note when no alternative exists. A missing
// tool is information, not a failure.
func (b *builder) addChain(ch engine.Chain, res engine.ChainResult, head int) {
	if !res.Available {
		b.sep()
		b.note(ch.NotAvailable())
		return
	}
	b.addCmd(res.CmdResult, head)
}

// done returns the assembled text and the combined failure cause, if any.
func (b *builder) done() (string, error) {
	if len(b.errs) > 0 {
		return b.sb.String(), errors.New(strings.Join(b.errs, "; "))
	}
	return b.sb.String(), nil
}

// ─── Text helpers ────────────────────────────────────────────────────

// headLines keeps the first n lines and notes how many were dropped.
func headLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return s
	}
	kept := strings.Join(lines[:n], "\n")
	return fmt.Sprintf("%s\n... (%d more lines)", kept, len(lines)-n)
}

// tailLines keeps the last n lines and notes how many were dropped.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return s
	}
	kept := strings.Join(lines[len(lines)-n:], "\n")
	return fmt.Sprintf("... (%d earlier lines)\n%s", len(lines)-n, kept)
}

// humanBytes renders a byte count the way df -h does ("3.8G", "512M").
func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}
