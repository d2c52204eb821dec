// Package output renders the human-readable diagnostic report and
// tee-copies it to an export file when one is requested.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Andresgithub1995/diagnostico/internal/types"
	"github.com/fatih/color"
)

// ─── Layout constants ────────────────────────────────────────────────
//
// The report is a flat stream of section blocks:
//
//     │margin│ ── TITLE ────────────────────────────── (dur) ──
//
//     <probe output, verbatim, no reindent>
//
// Rules, the banner and the summary carry a 2-space margin; probe
// output is passed through untouched so wide tool tables (df, ip,
// lsblk) keep their own alignment.
//
const (
	colMargin = 2  // left margin (spaces) for rules, banner and summary lines
	ruleWidth = 64 // width of horizontal divider rules
	minRule   = 24 // floor for rules on very narrow terminals
)

// Renderer writes a colored, human-readable diagnostic report.
type Renderer struct {
	Width int  // terminal width; 0 = unknown
	Dumb  bool // TERM=dumb — use single-char ASCII fallback icons
}

// Color helpers — each returns a sprint function.
var (
	cBold   = color.New(color.Bold).SprintFunc()
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cRed    = color.New(color.FgRed).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cCyan   = color.New(color.FgCyan).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()

	cRedBold   = color.New(color.FgRed, color.Bold).SprintFunc()
	cGreenBold = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// IsDumbTerm returns true when the terminal doesn't support Unicode.
func IsDumbTerm() bool {
	t := os.Getenv("TERM")
	return t == "dumb" || t == ""
}

// effRuleWidth caps the rule width to the terminal when the terminal is
// narrower than the default layout.
func (r *Renderer) effRuleWidth() int {
	if r.Width > 0 && r.Width-colMargin < ruleWidth {
		w := r.Width - colMargin
		if w < minRule {
			w = minRule
		}
		return w
	}
	return ruleWidth
}

// ─── Banner ──────────────────────────────────────────────────────────

// WriteBanner renders the report header: logo, start timestamp and the
// host context block.
func (r *Renderer) WriteBanner(w io.Writer, host types.HostInfo, version string, started time.Time) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("     _ _\n")
	b.WriteString("  __| (_)__ _ __ _\n")
	b.WriteString(" / _` | / _` / _` |\n")
	b.WriteString(" \\__,_|_\\__,_\\__, |\n")
	fmt.Fprintf(&b, "             |___/   diagnostico v%s\n", version)
	fmt.Fprintf(&b, "  %s\n", cDim("Read-only host diagnostics — look, don't touch"))
	fmt.Fprintf(&b, "  %s %s\n", cDim("Report started:"), started.Format("2006-01-02T15:04:05Z07:00"))
	b.WriteString("\n")

	fmt.Fprintf(&b, "  %s\n", cBold(r.icon("section")+" Host"))
	if host.Hostname != "" {
		fmt.Fprintf(&b, "    Name:    %s\n", host.Hostname)
	}
	if osLine := strings.TrimSpace(host.Platform + " " + host.PlatformVersion); osLine != "" {
		fmt.Fprintf(&b, "    OS:      %s (%s)\n", osLine, host.Arch)
	}
	if host.Kernel != "" {
		fmt.Fprintf(&b, "    Kernel:  %s\n", host.Kernel)
	}
	fmt.Fprintf(&b, "    Env:     %s\n", envLine(host))

	if !host.Root {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n", cYellow(r.icon("warn")),
			"Running as non-root — some sections may produce incomplete results")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// envLine condenses virtualization, uptime and process count into one
// "kvm · up 3d 4h · 182 procs" line, skipping anything unknown.
func envLine(h types.HostInfo) string {
	env := h.Virtualization
	if env == "" {
		env = "physical"
	}
	parts := []string{env}
	if h.Uptime > 0 {
		parts = append(parts, "up "+formatUptime(h.Uptime))
	}
	if h.Procs > 0 {
		parts = append(parts, fmt.Sprintf("%d procs", h.Procs))
	}
	return strings.Join(parts, " · ")
}

// ─── Section blocks ──────────────────────────────────────────────────

// WriteSection renders one diagnostic section: a titled rule, the
// probe's verbatim output, and an error annotation when the probe
// failed. Sections are streamed — nothing is buffered across them.
func (r *Renderer) WriteSection(w io.Writer, res types.ExecutionResult) error {
	if _, err := fmt.Fprintf(w, "\n%s%s\n\n", colPad(colMargin), r.sectionRule(res.Title, res.Duration)); err != nil {
		return err
	}

	if out := strings.TrimRight(res.Output, "\n"); out != "" {
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}

	if res.Failed {
		summary := res.ErrSummary
		if summary == "" {
			summary = "probe failed"
		}
		if _, err := fmt.Fprintf(w, "\n%s%s %s\n", colPad(colMargin),
			cRed(r.icon("fail")), cRed("Section error: "+summary)); err != nil {
			return err
		}
	}
	return nil
}

// sectionRule builds "── TITLE ─────────────── (132ms) ──".
func (r *Renderer) sectionRule(title string, d time.Duration) string {
	label := strings.ToUpper(title)
	dur := durationRaw(d)
	fill := r.effRuleWidth() - len(label) - len(dur) - 8
	if fill < 1 {
		fill = 1
	}
	return fmt.Sprintf("%s %s %s %s %s",
		cDim("──"), cBold(label), cDim(strings.Repeat("─", fill)), cDim(dur), cDim("──"))
}

// ─── Summary ─────────────────────────────────────────────────────────

// WriteSummary renders the report footer with the verdict line, section
// and error counts, and total runtime.
func (r *Renderer) WriteSummary(w io.Writer, s types.RunSummary) error {
	rule := cDim(strings.Repeat("─", r.effRuleWidth()))
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", rule)

	if s.Failed == 0 {
		fmt.Fprintf(&b, "  %s %s\n", cGreenBold(r.icon("pass")),
			cGreenBold("All sections completed"))
	} else {
		fmt.Fprintf(&b, "  %s %s\n", cRedBold(r.icon("warn")),
			cRedBold(fmt.Sprintf("%d section(s) reported errors", s.Failed)))
	}

	errPart := cDim("0 errors")
	if s.Failed > 0 {
		errPart = cRedBold(fmt.Sprintf("%d with errors", s.Failed))
	}
	fmt.Fprintf(&b, "  %s  %s · %s\n",
		cBold("Summary:"), cBold(fmt.Sprintf("%d sections", s.Sections)), errPart)

	dur := fmt.Sprintf("%.1fs", s.Duration.Seconds())
	fmt.Fprintf(&b, "  %s  %s\n", cDim("Completed in"), cBold(dur))
	fmt.Fprintf(&b, "  %s\n", rule)

	_, err := io.WriteString(w, b.String())
	return err
}

// ExportNote returns the console-only confirmation line for a saved
// report. Callers print it to stderr so the exported file and stdout
// stay byte-identical.
func (r *Renderer) ExportNote(path string, n int64) string {
	return fmt.Sprintf("%s %s %s", cGreen(r.icon("pass")),
		cDim("Report saved to"), cCyan(fmt.Sprintf("%s (%d bytes)", path, n)))
}

// ─── Icons ───────────────────────────────────────────────────────────

func (r *Renderer) icon(name string) string {
	if r.Dumb {
		switch name {
		case "pass":
			return "+"
		case "fail":
			return "x"
		case "warn":
			return "!"
		case "section":
			return ">"
		default:
			return "?"
		}
	}
	switch name {
	case "pass":
		return "✓"
	case "fail":
		return "✗"
	case "warn":
		return "⚠"
	case "section":
		return "▸"
	default:
		return "?"
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────

func durationRaw(d time.Duration) string {
	ms := d.Milliseconds()
	switch {
	case ms < 1:
		return "(<1ms)"
	case ms < 1000:
		return fmt.Sprintf("(%dms)", ms)
	default:
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	}
}

// formatUptime humanizes an uptime: "3d 4h", "2h 15m", "45m".
func formatUptime(d time.Duration) string {
	if d < time.Minute {
		return "<1m"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

func colPad(n int) string {
	return strings.Repeat(" ", n)
}
