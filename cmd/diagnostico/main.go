// Package main is the entry point for diagnostico — look, don't touch.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/Andresgithub1995/diagnostico/internal/config"
	"github.com/Andresgithub1995/diagnostico/internal/engine"
	"github.com/Andresgithub1995/diagnostico/internal/hostinfo"
	"github.com/Andresgithub1995/diagnostico/internal/output"
	"github.com/Andresgithub1995/diagnostico/internal/probe"
	"github.com/Andresgithub1995/diagnostico/internal/types"
)

// version is set at build time via -ldflags. The default is a dev fallback
// for plain `go install` or `go run` usage.
var version = "1.0.0"

// Config holds all parsed CLI flag values.
type Config struct {
	Sections   []string // requested section names, in report order
	All        bool
	Menu       bool
	ExportTxt  bool
	OutputFile string
	ConfigFile string
	NoColor    bool
	Debug      bool
}

// sectionFlags lists the per-section CLI flags in report order.
var sectionFlags = []struct {
	name string
	help string
}{
	{"system", "System identity: kernel, distribution, uptime"},
	{"performance", "Load, memory, and top processes"},
	{"disk", "Filesystem usage and block devices"},
	{"network", "Interfaces, routes, and listening sockets"},
	{"connectivity", "Ping, TCP, and HTTP reachability"},
	{"dns", "Resolver configuration and lookups"},
	{"services", "Running and failed system services"},
	{"logs", "Recent system and kernel log entries"},
	{"hardware", "CPU, PCI, and USB inventory"},
}

// parseFlags parses command-line arguments into a Config using a dedicated
// FlagSet, keeping the global flag.CommandLine clean for testability.
// Unknown options are rejected before flag parsing so the error message and
// its suggestions stay ours.
func parseFlags(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("diagnostico", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	picked := make(map[string]*bool, len(sectionFlags))
	for _, sf := range sectionFlags {
		picked[sf.name] = fs.Bool(sf.name, false, sf.help)
	}
	fs.BoolVar(&cfg.All, "all", false, "Run every diagnostic section")
	fs.BoolVar(&cfg.Menu, "menu", false, "Pick a section interactively")
	fs.BoolVar(&cfg.ExportTxt, "export-txt", false, "Also save the report to a text file")
	fs.StringVar(&cfg.OutputFile, "out", "", "Export file path (implies --export-txt)")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Path to a settings file (default: ./diagnostico.yaml)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Debug, "debug", false, "Verbose engine logging on stderr")

	fs.Usage = usage

	for _, arg := range args {
		if arg == "--" {
			break
		}
		if strings.HasPrefix(arg, "-") && !isValidFlag(fs, arg) {
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
			if sugg := suggestFlags(flagName(arg), flagNames(fs)); len(sugg) > 0 {
				fmt.Fprintf(os.Stderr, "\n  Did you mean:\n")
				for _, s := range sugg {
					fmt.Fprintf(os.Stderr, "    • --%s\n", s)
				}
			}
			fs.Usage()
			return nil, fmt.Errorf("unknown option: %s", arg)
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", fs.Arg(0))
		fs.Usage()
		return nil, fmt.Errorf("unknown argument: %s", fs.Arg(0))
	}

	for _, sf := range sectionFlags {
		if *picked[sf.name] {
			cfg.Sections = append(cfg.Sections, sf.name)
		}
	}
	if cfg.OutputFile != "" {
		cfg.ExportTxt = true
	}
	return cfg, nil
}

// flagName strips leading dashes and any =value suffix from a raw argument.
func flagName(arg string) string {
	name := strings.TrimLeft(arg, "-")
	if idx := strings.Index(name, "="); idx != -1 {
		name = name[:idx]
	}
	return name
}

// isValidFlag reports whether a raw argument names a registered flag. Bare
// "-", the "--" terminator, and the built-in help flags are accepted; the
// flag package handles those itself.
func isValidFlag(fs *flag.FlagSet, arg string) bool {
	name := flagName(arg)
	if name == "" || name == "h" || name == "help" {
		return true
	}
	return fs.Lookup(name) != nil
}

// flagNames collects every registered flag name, for suggestions.
func flagNames(fs *flag.FlagSet) []string {
	var names []string
	fs.VisitAll(func(f *flag.Flag) {
		names = append(names, f.Name)
	})
	return names
}

func usage() {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "     _ _\n")
	fmt.Fprintf(os.Stderr, "  __| (_)__ _ __ _\n")
	fmt.Fprintf(os.Stderr, " / _` | / _` / _` |\n")
	fmt.Fprintf(os.Stderr, " \\__,_|_\\__,_\\__, |\n")
	fmt.Fprintf(os.Stderr, "             |___/   diagnostico v%s\n", version)
	fmt.Fprintf(os.Stderr, "  Read-only host diagnostics\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Usage: diagnostico [options]\n\n")
	fmt.Fprintf(os.Stderr, "  Options:\n")
	fmt.Fprintf(os.Stderr, "        --all              Run every diagnostic section\n")
	fmt.Fprintf(os.Stderr, "        --system           System identity: kernel, distribution, uptime\n")
	fmt.Fprintf(os.Stderr, "        --performance      Load, memory, and top processes\n")
	fmt.Fprintf(os.Stderr, "        --disk             Filesystem usage and block devices\n")
	fmt.Fprintf(os.Stderr, "        --network          Interfaces, routes, and listening sockets\n")
	fmt.Fprintf(os.Stderr, "        --connectivity     Ping, TCP, and HTTP reachability\n")
	fmt.Fprintf(os.Stderr, "        --dns              Resolver configuration and lookups\n")
	fmt.Fprintf(os.Stderr, "        --services         Running and failed system services\n")
	fmt.Fprintf(os.Stderr, "        --logs             Recent system and kernel log entries\n")
	fmt.Fprintf(os.Stderr, "        --hardware         CPU, PCI, and USB inventory\n")
	fmt.Fprintf(os.Stderr, "        --menu             Pick a section interactively\n")
	fmt.Fprintf(os.Stderr, "        --export-txt       Also save the report to a text file\n")
	fmt.Fprintf(os.Stderr, "        --out <file>       Export file path (default: diagnostico-report.txt)\n")
	fmt.Fprintf(os.Stderr, "        --config <file>    Settings file (default: ./diagnostico.yaml)\n")
	fmt.Fprintf(os.Stderr, "        --no-color         Disable colored output\n")
	fmt.Fprintf(os.Stderr, "        --debug            Verbose engine logging on stderr\n")
	fmt.Fprintf(os.Stderr, "    -h, --help             Show this help\n")
	fmt.Fprintf(os.Stderr, "\n  Examples:\n")
	fmt.Fprintf(os.Stderr, "    diagnostico --all                     Full report, all nine sections\n")
	fmt.Fprintf(os.Stderr, "    diagnostico --system --disk           Just those two sections\n")
	fmt.Fprintf(os.Stderr, "    diagnostico --disk --system           Same report: order is canonical\n")
	fmt.Fprintf(os.Stderr, "    diagnostico --menu                    Pick a section interactively\n")
	fmt.Fprintf(os.Stderr, "    diagnostico --all --export-txt        Save a copy to diagnostico-report.txt\n")
	fmt.Fprintf(os.Stderr, "    diagnostico --all --out /tmp/d.txt    Save a copy to a custom path\n")
	fmt.Fprintf(os.Stderr, "    diagnostico --network --debug         Show engine commands as they run\n")
	fmt.Fprintf(os.Stderr, "\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(0)
	}
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}
	os.Exit(run(cfg))
}

// run executes one report with the given configuration and returns an exit
// code. Probe failures are rendered into the report and never change the
// exit code; only flag, menu, config and sink errors do.
func run(cfg *Config) int {
	settings, err := config.Load(cfg.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		return 1
	}

	isDumb := setupOutputOptions(cfg)
	log := newLogger(cfg.Debug)

	runner := engine.NewCommandRunner(settings.CommandTimeout(), log)
	reg := probe.NewRegistry(runner, probeOptions(settings))

	sel, code := buildSelection(cfg, reg)
	if code >= 0 {
		return code
	}

	probes, err := probe.Select(reg, sel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		return 1
	}
	if len(probes) == 0 {
		return 0
	}

	return writeReport(cfg, settings, log, probes, sel, isDumb)
}

// setupOutputOptions disables color when the user asked, when the report is
// being exported (the file must stay free of escape sequences, and the tee
// gives console and file the same bytes), and for dumb or non-terminal
// stdout.
func setupOutputOptions(cfg *Config) bool {
	isDumb := output.IsDumbTerm()
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if cfg.NoColor || cfg.ExportTxt || isDumb || !tty {
		color.NoColor = true
	}
	return isDumb
}

// newLogger builds the stderr engine logger. Debug level shows every command
// the runner resolves and executes; the default only surfaces warnings.
func newLogger(debug bool) hclog.Logger {
	level := hclog.Warn
	if debug {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "diagnostico",
		Level:  level,
		Output: os.Stderr,
	})
}

// probeOptions maps resolved settings onto probe tunables.
func probeOptions(s config.Settings) probe.Options {
	return probe.Options{
		PingHost:    s.PingHost,
		PingCount:   s.PingCount,
		PingWaitSec: s.PingWaitSec,
		TCPAddr:     s.TCPAddr,
		HTTPURL:     s.HTTPURL,
		LookupHost:  s.LookupHost,
		NetTimeout:  s.NetTimeout(),
		LogLines:    s.LogLines,
		HeadLines:   s.HeadLines,
	}
}

// buildSelection turns flags, or one interactive menu answer, into the run's
// Selection. The menu replaces any section flags; export flags stay in
// effect either way. Returns -1 as code to continue, or an exit code.
func buildSelection(cfg *Config, reg *probe.Registry) (types.Selection, int) {
	sel := types.Selection{
		ExportTxt:  cfg.ExportTxt,
		OutputPath: cfg.OutputFile,
	}

	switch {
	case cfg.Menu:
		names, err := runMenu(os.Stdin, os.Stdout, reg)
		if err != nil {
			if errors.Is(err, errMenuQuit) {
				return sel, 0
			}
			fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
			return sel, 1
		}
		sel.Probes = names
	case cfg.All:
		sel.Probes = []string{types.AllProbes}
	default:
		sel.Probes = cfg.Sections
	}
	return sel, -1
}

// writeReport streams the banner, every selected section, and the summary to
// stdout, teeing the identical bytes to the export file when requested.
func writeReport(cfg *Config, settings config.Settings, log hclog.Logger,
	probes []types.Probe, sel types.Selection, isDumb bool,
) int {
	// Terminal width only matters for live console output; exported reports
	// keep the fixed default width so the file does not depend on the
	// terminal the run happened to use.
	termWidth := 0
	if !sel.ExportTxt {
		if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
			if tw, _, err := term.GetSize(fd); err == nil && tw > 0 {
				termWidth = tw
			}
		}
	}

	render := &output.Renderer{Width: termWidth, Dumb: isDumb}

	var out io.Writer = os.Stdout
	var tee *output.Tee
	path := ""
	if sel.ExportTxt {
		path = exportPath(sel, settings)
		if err := validateOutputPath(path); err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Unsafe export path: %v\n", err)
			return 1
		}
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Failed to create export file: %v\n", err)
			return 1
		}
		defer f.Close()
		tee = output.NewTee(os.Stdout, f)
		out = tee
	}

	host := hostinfo.Collect()
	if err := render.WriteBanner(out, host, version, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to write report: %v\n", err)
		return 1
	}

	exec := engine.NewSafeExecutor(log)
	spin := newSpinner(cfg, isDumb)

	var render2 engine.SectionWriter = render
	if spin != nil {
		render2 = &spinnerWriter{SectionWriter: render, spin: spin}
	}
	rn := engine.NewRunner(exec, render2, log)
	if spin != nil {
		rn.Progress = func(title string) {
			spin.Suffix = " " + title
			if !spin.Active() {
				spin.Start()
			}
		}
	}

	sum, err := rn.Run(context.Background(), probes, out)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to write report: %v\n", err)
		return 1
	}

	if err := render.WriteSummary(out, sum); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to write report: %v\n", err)
		return 1
	}

	if tee != nil {
		if err := tee.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "  ⚠ Export incomplete: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "  %s\n", render.ExportNote(path, tee.Mirrored()))
	}

	return 0
}

// exportPath resolves the export file path: --out wins, the configured
// default otherwise.
func exportPath(sel types.Selection, settings config.Settings) string {
	if sel.OutputPath != "" {
		return sel.OutputPath
	}
	return settings.ExportPath
}

// newSpinner builds the stderr progress spinner, or nil when stderr is not
// an interactive terminal or debug logging would fight it for the stream.
func newSpinner(cfg *Config, isDumb bool) *spinner.Spinner {
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if cfg.Debug || isDumb || !tty {
		return nil
	}
	return spinner.New(spinner.CharSets[9], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr))
}

// spinnerWriter stops the progress spinner before a section reaches the
// report stream, so the spinner's erase sequence never lands inside report
// output on a shared terminal.
type spinnerWriter struct {
	engine.SectionWriter
	spin *spinner.Spinner
}

func (w *spinnerWriter) WriteSection(out io.Writer, res types.ExecutionResult) error {
	if w.spin.Active() {
		w.spin.Stop()
	}
	return w.SectionWriter.WriteSection(out, res)
}

// unsafeOutputPrefixes are path prefixes where writing export files is
// rejected. Prevents accidental overwrite of system files when running as
// root.
var unsafeOutputPrefixes = []string{"/etc/", "/proc/", "/sys/", "/dev/", "/boot/", "/sbin/", "/bin/", "/usr/"}

// validateOutputPath checks that the export file path is safe to write to.
func validateOutputPath(path string) error {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		for _, prefix := range unsafeOutputPrefixes {
			if strings.HasPrefix(cleaned, prefix) {
				return fmt.Errorf("refusing to write to system path %q", cleaned)
			}
		}
	}
	return nil
}
