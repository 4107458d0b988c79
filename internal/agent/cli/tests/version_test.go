package tests

import (
	"runtime"
	"strings"
	"testing"

	"github.com/aaronsummercloud/recipe-api-project/internal/agent/cli"
)

func TestNewVersionCmd_PrintsBuildInfo(t *testing.T) {
	out, err := run(cli.NewVersionCmd("1.2.3", "2026-01-16"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.HasPrefix(out, "recipectl 1.2.3 (built 2026-01-16, ") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, runtime.Version()) {
		t.Fatalf("expected go version in output, got %q", out)
	}
}

// Сборка без -ldflags
func TestNewVersionCmd_DevBuild(t *testing.T) {
	out, err := run(cli.NewVersionCmd("", ""))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.HasPrefix(out, "recipectl dev (built unknown, ") {
		t.Fatalf("unexpected output: %q", out)
	}
}
