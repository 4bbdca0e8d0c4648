package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	t.Setenv("SKILLSCREEN_TEST_KEY", "from-env")

	got, err := Load(Source{Name: "gemini api key", File: path, Env: "SKILLSCREEN_TEST_KEY", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected from-file, got %q", got)
	}
}

func TestLoadFallsBackToEnvThenValue(t *testing.T) {
	t.Setenv("SKILLSCREEN_TEST_KEY", " from-env ")

	got, err := Load(Source{Env: "SKILLSCREEN_TEST_KEY", Value: "inline"})
	if err != nil || got != "from-env" {
		t.Fatalf("expected from-env, got %q (%v)", got, err)
	}

	t.Setenv("SKILLSCREEN_TEST_KEY", "")
	got, err = Load(Source{Env: "SKILLSCREEN_TEST_KEY", Value: "inline"})
	if err != nil || got != "inline" {
		t.Fatalf("expected inline, got %q (%v)", got, err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	tests := []struct {
		name   string
		src    Source
		expect string
	}{
		{name: "missing file", src: Source{Name: "gemini api key", File: filepath.Join(dir, "nope")}, expect: "reading gemini api key"},
		{name: "empty file", src: Source{Name: "gemini api key", File: empty}, expect: "is empty"},
		{name: "nothing configured", src: Source{}, expect: "secret is not configured"},
		{name: "unset env", src: Source{Name: "gemini api key", Env: "SKILLSCREEN_UNSET_KEY"}, expect: "set SKILLSCREEN_UNSET_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil || !strings.Contains(err.Error(), tt.expect) {
				t.Fatalf("expected error containing %q, got %v", tt.expect, err)
			}
		})
	}
}
