package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", "gqlcanvas"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(xdg, "gqlcanvas"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	cfgPath := writeTestConfig(t, "[cache]\nbackend = \"file\"\n")

	out, _, err := runCLI(t, "", "--config", cfgPath, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	dir := strings.TrimSpace(out)
	if dir != filepath.Join(xdg, "gqlcanvas") {
		t.Errorf("cache path = %q", dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := runCLI(t, "", "--config", cfgPath, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "Cleared 1 cached entries") {
		t.Errorf("clear output = %q", stderr)
	}
}

func TestCachePathDisabled(t *testing.T) {
	cfgPath := writeTestConfig(t, "[cache]\nbackend = \"none\"\n")
	out, _, err := runCLI(t, "", "--config", cfgPath, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains([]byte(out), []byte("disabled")) {
		t.Errorf("output = %q", out)
	}
}
