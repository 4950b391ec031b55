package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := Run(context.Background(), []string{"version"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errBuf.String())
	}
	if !strings.HasPrefix(out.String(), "fizzpipe ") {
		t.Fatalf("version output %q", out.String())
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := Run(context.Background(), []string{"--no-such-flag"}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if !strings.Contains(errBuf.String(), "--no-such-flag") {
		t.Fatalf("stderr does not name the bad flag: %s", errBuf.String())
	}
}

func TestUnexpectedArgumentIsUsageError(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := Run(context.Background(), []string{"100"}, &out, &errBuf); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}
