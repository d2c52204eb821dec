package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Andresgithub1995/diagnostico/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProbe is a scriptable probe for executor and runner tests.
type stubProbe struct {
	name     string
	out      string
	err      error
	panicMsg string
	delay    time.Duration
	runs     *int
}

func (s *stubProbe) Name() string        { return s.name }
func (s *stubProbe) Title() string       { return "Stub " + s.name }
func (s *stubProbe) Description() string { return "stub probe" }

func (s *stubProbe) Run(ctx context.Context) (string, error) {
	if s.runs != nil {
		*s.runs++
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.out, s.err
}

// ─── SafeExecutor tests ──────────────────────────────────────────────

func TestSafeExecutor_Execute_Success(t *testing.T) {
	e := NewSafeExecutor(nil)

	res := e.Execute(context.Background(), &stubProbe{name: "disk", out: "all good\n", delay: time.Millisecond})

	assert.Equal(t, "disk", res.Probe)
	assert.Equal(t, "Stub disk", res.Title)
	assert.Equal(t, "all good\n", res.Output)
	assert.False(t, res.Failed)
	assert.Empty(t, res.ErrSummary)
	assert.Positive(t, res.Duration)
}

func TestSafeExecutor_Execute_ErrorKeepsPartialOutput(t *testing.T) {
	e := NewSafeExecutor(nil)
	p := &stubProbe{
		name: "connectivity",
		out:  "$ ping -c 3 8.8.8.8\npartial\n",
		err:  errors.New("ping: network is unreachable"),
	}

	res := e.Execute(context.Background(), p)

	assert.True(t, res.Failed)
	assert.Equal(t, "ping: network is unreachable", res.ErrSummary)
	assert.Equal(t, "$ ping -c 3 8.8.8.8\npartial\n", res.Output, "partial output must survive the failure")
}

func TestSafeExecutor_Execute_RecoversPanic(t *testing.T) {
	e := NewSafeExecutor(nil)

	var res types.ExecutionResult
	require.NotPanics(t, func() {
		res = e.Execute(context.Background(), &stubProbe{name: "logs", panicMsg: "index out of range"})
	})

	assert.True(t, res.Failed)
	assert.Equal(t, "probe panicked: index out of range", res.ErrSummary)
	assert.Positive(t, res.Duration)
}

func TestSafeExecutor_Execute_PanicDoesNotPoisonNextProbe(t *testing.T) {
	e := NewSafeExecutor(nil)

	bad := e.Execute(context.Background(), &stubProbe{name: "bad", panicMsg: "boom"})
	good := e.Execute(context.Background(), &stubProbe{name: "good", out: "fine\n"})

	assert.True(t, bad.Failed)
	assert.False(t, good.Failed)
	assert.Equal(t, "fine\n", good.Output)
}
