package main

import (
	"flag"
	"os/exec"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/Andresgithub1995/diagnostico/internal/config"
	"github.com/Andresgithub1995/diagnostico/internal/engine"
	"github.com/Andresgithub1995/diagnostico/internal/probe"
	"github.com/Andresgithub1995/diagnostico/internal/types"
)

func init() {
	color.NoColor = true
}

// testRegistry builds a registry over a runner that finds no binaries at
// all, so nothing in these tests shells out.
func testRegistry(tb testing.TB) *probe.Registry {
	tb.Helper()
	run := engine.NewCommandRunnerWith(time.Second, nil, func(string) (string, error) {
		return "", exec.ErrNotFound
	})
	return probe.NewRegistry(run, probe.Options{})
}

// ── parseFlags tests ─────────────────────────────────────────────────

func TestParseFlags_Defaults(t *testing.T) {
	cfg, err := parseFlags([]string{})
	assert.NoError(t, err)
	assert.Empty(t, cfg.Sections)
	assert.False(t, cfg.All)
	assert.False(t, cfg.Menu)
	assert.False(t, cfg.ExportTxt)
	assert.Equal(t, "", cfg.OutputFile)
	assert.Equal(t, "", cfg.ConfigFile)
	assert.False(t, cfg.NoColor)
	assert.False(t, cfg.Debug)
}

func TestParseFlags_SectionFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"--system", "--disk"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"system", "disk"}, cfg.Sections)
}

func TestParseFlags_SectionOrderIsCanonical(t *testing.T) {
	a, err := parseFlags([]string{"--disk", "--system", "--dns"})
	assert.NoError(t, err)
	b, err := parseFlags([]string{"--dns", "--disk", "--system"})
	assert.NoError(t, err)
	assert.Equal(t, a.Sections, b.Sections)
	assert.Equal(t, []string{"system", "disk", "dns"}, a.Sections)
}

func TestParseFlags_EverySectionFlag(t *testing.T) {
	args := make([]string, 0, len(sectionFlags))
	for _, sf := range sectionFlags {
		args = append(args, "--"+sf.name)
	}
	cfg, err := parseFlags(args)
	assert.NoError(t, err)
	assert.Len(t, cfg.Sections, len(sectionFlags))
}

func TestParseFlags_AllLongFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"--all",
		"--menu",
		"--export-txt",
		"--out", "/tmp/report.txt",
		"--config", "custom.yaml",
		"--no-color",
		"--debug",
	})
	assert.NoError(t, err)
	assert.True(t, cfg.All)
	assert.True(t, cfg.Menu)
	assert.True(t, cfg.ExportTxt)
	assert.Equal(t, "/tmp/report.txt", cfg.OutputFile)
	assert.Equal(t, "custom.yaml", cfg.ConfigFile)
	assert.True(t, cfg.NoColor)
	assert.True(t, cfg.Debug)
}

func TestParseFlags_OutImpliesExport(t *testing.T) {
	cfg, err := parseFlags([]string{"--all", "--out", "r.txt"})
	assert.NoError(t, err)
	assert.True(t, cfg.ExportTxt)
	assert.Equal(t, "r.txt", cfg.OutputFile)
}

func TestParseFlags_EqualsForm(t *testing.T) {
	cfg, err := parseFlags([]string{"--out=/tmp/x.txt", "--system"})
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/x.txt", cfg.OutputFile)
	assert.Equal(t, []string{"system"}, cfg.Sections)
}

func TestParseFlags_UnknownOption(t *testing.T) {
	_, err := parseFlags([]string{"--sytem"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown option")
}

func TestParseFlags_UnknownShortOption(t *testing.T) {
	_, err := parseFlags([]string{"-x"})
	assert.Error(t, err)
}

func TestParseFlags_PositionalRejected(t *testing.T) {
	_, err := parseFlags([]string{"--all", "stray"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown argument")
}

func TestParseFlags_Help(t *testing.T) {
	for _, arg := range []string{"-h", "--help"} {
		t.Run(arg, func(t *testing.T) {
			_, err := parseFlags([]string{arg})
			assert.ErrorIs(t, err, flag.ErrHelp)
		})
	}
}

// ── flagName tests ───────────────────────────────────────────────────

func TestFlagName(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"--system", "system"},
		{"-h", "h"},
		{"--config=foo.yaml", "config"},
		{"--out=/tmp/x", "out"},
		{"-", ""},
		{"--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, flagName(tt.arg))
		})
	}
}

// ── buildSelection tests ─────────────────────────────────────────────

func TestBuildSelection_AllFlag(t *testing.T) {
	reg := testRegistry(t)
	cfg := &Config{All: true, ExportTxt: true, OutputFile: "/tmp/x.txt"}

	sel, code := buildSelection(cfg, reg)
	assert.Equal(t, -1, code)
	assert.Equal(t, []string{types.AllProbes}, sel.Probes)
	assert.True(t, sel.ExportTxt)
	assert.Equal(t, "/tmp/x.txt", sel.OutputPath)
}

func TestBuildSelection_SectionFlags(t *testing.T) {
	reg := testRegistry(t)
	cfg := &Config{Sections: []string{"system", "disk"}}

	sel, code := buildSelection(cfg, reg)
	assert.Equal(t, -1, code)
	assert.Equal(t, []string{"system", "disk"}, sel.Probes)
	assert.False(t, sel.ExportTxt)
}

func TestBuildSelection_EmptyIsValid(t *testing.T) {
	reg := testRegistry(t)

	sel, code := buildSelection(&Config{}, reg)
	assert.Equal(t, -1, code)
	assert.Empty(t, sel.Probes)
}

// ── exportPath tests ─────────────────────────────────────────────────

func TestExportPath_Default(t *testing.T) {
	sel := types.Selection{ExportTxt: true}
	path := exportPath(sel, config.Defaults())
	assert.Equal(t, "diagnostico-report.txt", path)
}

func TestExportPath_Override(t *testing.T) {
	sel := types.Selection{ExportTxt: true, OutputPath: "/tmp/mine.txt"}
	path := exportPath(sel, config.Defaults())
	assert.Equal(t, "/tmp/mine.txt", path)
}

// ── probeOptions tests ───────────────────────────────────────────────

func TestProbeOptions_MapsSettings(t *testing.T) {
	s := config.Defaults()
	s.PingHost = "9.9.9.9"
	s.NetTimeoutSec = 7
	s.LogLines = 123

	opts := probeOptions(s)
	assert.Equal(t, "9.9.9.9", opts.PingHost)
	assert.Equal(t, 7*time.Second, opts.NetTimeout)
	assert.Equal(t, 123, opts.LogLines)
	assert.Equal(t, s.TCPAddr, opts.TCPAddr)
	assert.Equal(t, s.HTTPURL, opts.HTTPURL)
	assert.Equal(t, s.LookupHost, opts.LookupHost)
	assert.Equal(t, s.PingCount, opts.PingCount)
	assert.Equal(t, s.PingWaitSec, opts.PingWaitSec)
	assert.Equal(t, s.HeadLines, opts.HeadLines)
}

// ── validateOutputPath tests ─────────────────────────────────────────

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		path   string
		wantOK bool
	}{
		{"report.txt", true},
		{"./out/report.txt", true},
		{"../report.txt", true},
		{"/tmp/report.txt", true},
		{"/home/user/report.txt", true},
		{"/etc/passwd", false},
		{"/etc/diagnostico/report.txt", false},
		{"/proc/1/mem", false},
		{"/sys/kernel/x", false},
		{"/dev/sda", false},
		{"/boot/grub/x", false},
		{"/usr/local/bin/x", false},
		{"/tmp/../etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := validateOutputPath(tt.path)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
