package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewVersionCmd tests the version command.
func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints version, commit and date", func(t *testing.T) {
		t.Parallel()

		cmd := NewVersionCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"eolallowlist version", "commit:", "built:"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output, got %q", want, output)
			}
		}
	})
}

// TestGetVersion tests version fallbacks.
func TestGetVersion(t *testing.T) {
	t.Parallel()

	if getVersion() == "" {
		t.Error("expected non-empty version")
	}
	if getCommit() == "" {
		t.Error("expected non-empty commit")
	}
	if getDate() == "" {
		t.Error("expected non-empty date")
	}
}
