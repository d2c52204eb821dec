package engine

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noneFound(string) (string, error) {
	return "", exec.ErrNotFound
}

// ─── Command tests ───────────────────────────────────────────────────

func TestCommand_String(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"bare binary", Command{Bin: "lscpu"}, "lscpu"},
		{"with args", Command{Bin: "ping", Args: []string{"-c", "3", "1.1.1.1"}}, "ping -c 3 1.1.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}

func TestChain_NotAvailable(t *testing.T) {
	ch := Chain{Label: "routes", Alternatives: []Command{
		{Bin: "ip", Args: []string{"route"}},
		{Bin: "route", Args: []string{"-n"}},
	}}

	assert.Equal(t, "routes: not available on this host (tried: ip, route)", ch.NotAvailable())
}

// ─── Run tests ───────────────────────────────────────────────────────

func TestCommandRunner_Run(t *testing.T) {
	r := NewCommandRunner(5*time.Second, nil)

	res := r.Run(context.Background(), Command{Bin: "echo", Args: []string{"hello", "world"}})

	require.NoError(t, res.Err)
	assert.Equal(t, "hello world\n", res.Stdout)
	assert.Empty(t, res.Stderr)
}

func TestCommandRunner_Run_MissingBinary(t *testing.T) {
	r := NewCommandRunnerWith(time.Second, nil, noneFound)

	res := r.Run(context.Background(), Command{Bin: "uname", Args: []string{"-a"}})

	require.Error(t, res.Err)
	assert.True(t, IsNotFound(res.Err))
	assert.Empty(t, res.Stdout)
}

func TestCommandRunner_Run_NonZeroExit(t *testing.T) {
	r := NewCommandRunner(5*time.Second, nil)

	res := r.Run(context.Background(), Command{Bin: "false"})

	require.Error(t, res.Err)
	assert.False(t, IsNotFound(res.Err))
	assert.Contains(t, res.Err.Error(), "false")
}

func TestCommandRunner_Run_CapturesStderrSeparately(t *testing.T) {
	r := NewCommandRunner(5*time.Second, nil)

	res := r.Run(context.Background(), Command{Bin: "ls", Args: []string{"/definitely/not/a/path"}})

	require.Error(t, res.Err)
	assert.Empty(t, res.Stdout)
	assert.NotEmpty(t, res.Stderr)
}

func TestCommandRunner_Run_Timeout(t *testing.T) {
	r := NewCommandRunner(50*time.Millisecond, nil)

	res := r.Run(context.Background(), Command{Bin: "sleep", Args: []string{"2"}})

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "timed out after")
}

func TestCommandRunner_Available(t *testing.T) {
	r := NewCommandRunner(time.Second, nil)
	bare := NewCommandRunnerWith(time.Second, nil, noneFound)

	assert.True(t, r.Available("echo"))
	assert.False(t, r.Available("no-such-diagnostic-tool-xyz"))
	assert.False(t, bare.Available("echo"))
}

// ─── Chain tests ─────────────────────────────────────────────────────

func TestCommandRunner_RunChain_FirstAvailableWins(t *testing.T) {
	// Only "echo" resolves; the preferred alternative is missing.
	lookPath := func(bin string) (string, error) {
		if bin == "echo" {
			return exec.LookPath("echo")
		}
		return "", exec.ErrNotFound
	}
	r := NewCommandRunnerWith(time.Second, nil, lookPath)

	ch := Chain{Label: "interfaces", Alternatives: []Command{
		{Bin: "ip", Args: []string{"addr"}},
		{Bin: "echo", Args: []string{"fallback ran"}},
	}}
	res := r.RunChain(context.Background(), ch)

	require.True(t, res.Available)
	require.NoError(t, res.Err)
	assert.Equal(t, "echo", res.Command.Bin)
	assert.Equal(t, "fallback ran\n", res.Stdout)
}

func TestCommandRunner_RunChain_PrefersEarlierAlternative(t *testing.T) {
	r := NewCommandRunner(time.Second, nil)

	ch := Chain{Label: "greeting", Alternatives: []Command{
		{Bin: "echo", Args: []string{"first"}},
		{Bin: "echo", Args: []string{"second"}},
	}}
	res := r.RunChain(context.Background(), ch)

	require.True(t, res.Available)
	assert.Equal(t, "first\n", res.Stdout)
}

func TestCommandRunner_RunChain_Exhausted(t *testing.T) {
	r := NewCommandRunnerWith(time.Second, nil, noneFound)

	ch := Chain{Label: "sockets", Alternatives: []Command{
		{Bin: "ss", Args: []string{"-tuln"}},
		{Bin: "netstat", Args: []string{"-tuln"}},
	}}
	res := r.RunChain(context.Background(), ch)

	assert.False(t, res.Available)
	assert.NoError(t, res.Err)
}

// ─── Summary helpers ─────────────────────────────────────────────────

func TestExitSummary(t *testing.T) {
	tests := []struct {
		name string
		res  CmdResult
		want string
	}{
		{
			name: "no error",
			res:  CmdResult{Command: Command{Bin: "df"}},
			want: "",
		},
		{
			name: "stderr first line wins",
			res: CmdResult{
				Command: Command{Bin: "ping"},
				Stderr:  "ping: unknown host nowhere.invalid\ntrailing detail\n",
				Err:     errors.New("ping: exit status 2"),
			},
			want: "ping: ping: unknown host nowhere.invalid",
		},
		{
			name: "error text when stderr empty",
			res: CmdResult{
				Command: Command{Bin: "dmesg"},
				Err:     errors.New("dmesg: exit status 1"),
			},
			want: "dmesg: exit status 1",
		},
		{
			name: "whitespace-only stderr ignored",
			res: CmdResult{
				Command: Command{Bin: "ss"},
				Stderr:  "  \n\n",
				Err:     errors.New("ss: exit status 255"),
			},
			want: "ss: exit status 255",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitSummary(tt.res))
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"one line", "one line"},
		{"first\nsecond", "first"},
		{"  padded  \nmore", "padded"},
		{"", ""},
		{"\n\n", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, firstLine(tt.in))
	}
}
