package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"github.com/riskibarqy/scorecast/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default of 1 step, got %d (%v)", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d (%v)", got, err)
	}
	if _, err := parseSteps([]string{"0"}); err == nil {
		t.Fatalf("expected error for zero steps")
	}
	if _, err := parseSteps([]string{"x"}); err == nil {
		t.Fatalf("expected error for non-numeric steps")
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if got, err := parseVersion("1772150400"); err != nil || got != 1772150400 {
		t.Fatalf("unexpected version %d (%v)", got, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseTarget("7"); err != nil || got != 7 {
		t.Fatalf("unexpected target %d (%v)", got, err)
	}
	if _, err := parseTarget("-7"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SCORECAST_TEST_FLAG", "")
	if !envBool("SCORECAST_TEST_FLAG", true) {
		t.Fatalf("expected fallback when unset")
	}
	t.Setenv("SCORECAST_TEST_FLAG", "no")
	if envBool("SCORECAST_TEST_FLAG", true) {
		t.Fatalf("expected false for no")
	}
}

type fakeMigrator struct {
	steps   int
	target  uint
	forced  int
	version uint
	dirty   bool
	err     error
}

func (f *fakeMigrator) Up() error                    { return f.err }
func (f *fakeMigrator) Steps(n int) error            { f.steps = n; return f.err }
func (f *fakeMigrator) Migrate(v uint) error         { f.target = v; return f.err }
func (f *fakeMigrator) Force(v int) error            { f.forced = v; return f.err }
func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, f.err }

func TestCommands(t *testing.T) {
	logger := logging.NewNop()

	m := &fakeMigrator{}
	if err := commands["down"](m, []string{"2"}, io.Discard, logger); err != nil || m.steps != -2 {
		t.Fatalf("expected down 2 to step -2, got %d (%v)", m.steps, err)
	}
	if err := commands["goto"](m, []string{"42"}, io.Discard, logger); err != nil || m.target != 42 {
		t.Fatalf("expected goto 42, got %d (%v)", m.target, err)
	}
	if err := commands["force"](m, nil, io.Discard, logger); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error for force without version, got %v", err)
	}

	noChange := &fakeMigrator{err: migrate.ErrNoChange}
	if err := commands["up"](noChange, nil, io.Discard, logger); err != nil {
		t.Fatalf("expected no-change to be ignored, got %v", err)
	}

	broken := &fakeMigrator{err: errors.New("dirty database")}
	if err := commands["up"](broken, nil, io.Discard, logger); err == nil {
		t.Fatalf("expected migration error to surface")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	if err := runVersion(&fakeMigrator{version: 7, dirty: true}, nil, &out, logging.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "version: 7\ndirty: true\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := runVersion(&fakeMigrator{err: migrate.ErrNilVersion}, nil, &out, logging.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "version: none\ndirty: false\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
