package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	secret, err := Load(Source{Name: "api key", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "file-secret" {
		t.Fatalf("unexpected secret: %q", secret)
	}
}

func TestLoadFileBeatsEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}
	t.Setenv("TEST_SECRET", "from-env")

	secret, err := Load(Source{File: path, Env: "TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("file must win over env, got %q", secret)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TEST_SECRET", "  env-secret  ")

	secret, err := Load(Source{Env: "TEST_SECRET", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "env-secret" {
		t.Fatalf("env must win over inline value, got %q", secret)
	}
}

func TestLoadInlineFallback(t *testing.T) {
	t.Setenv("TEST_SECRET", "")

	secret, err := Load(Source{Env: "TEST_SECRET", Value: " inline "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "inline" {
		t.Fatalf("unexpected secret: %q", secret)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatalf("expected an error when nothing is configured")
	}

	if _, err := Load(Source{File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected an error for an unreadable file")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}
	if _, err := Load(Source{File: empty}); err == nil {
		t.Fatalf("expected an error for an empty secret file")
	}
}
