package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRootFrom_FindsNearestAncestor(t *testing.T) {
	// outer/.git and outer/sub/nested/.git: the search from deep inside
	// nested must stop at nested, not climb to outer.
	outer := t.TempDir()
	if err := os.MkdirAll(filepath.Join(outer, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(outer, "sub", "nested")
	if err := os.MkdirAll(filepath.Join(nested, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(nested, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := RootFrom(deep); got != nested {
		t.Errorf("RootFrom(%q) = %q, want %q", deep, got, nested)
	}

	// From between the two markers the outer checkout wins.
	between := filepath.Join(outer, "sub")
	if got := RootFrom(between); got != outer {
		t.Errorf("RootFrom(%q) = %q, want %q", between, got, outer)
	}
}

func TestRootFrom_MarkerDirectoryItself(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := RootFrom(dir); got != dir {
		t.Errorf("RootFrom(%q) = %q, want %q", dir, got, dir)
	}
}

func TestRootFrom_NoMarker(t *testing.T) {
	// t.TempDir lives under the system temp directory; no ancestor of it
	// should carry a .git directory on a test host.
	dir := filepath.Join(t.TempDir(), "x", "y")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := RootFrom(dir); got != "" {
		t.Errorf("RootFrom(%q) = %q, want empty string", dir, got)
	}
}

func TestRootFrom_MarkerMustBeDirectory(t *testing.T) {
	// A plain file named .git (as in git worktrees) is not a checkout root
	// for our purposes.
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: elsewhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := RootFrom(dir); got != "" {
		t.Errorf("RootFrom(%q) = %q, want empty string", dir, got)
	}
}

func TestRoot_UsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(sub); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(prev)

	got := Root()
	// Resolve symlinks before comparing: on macOS the temp dir is behind
	// /var -> /private/var.
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != want {
		t.Errorf("Root() = %q, want %q", got, want)
	}
}
