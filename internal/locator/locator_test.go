package locator

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// buildTree creates the given relative files under a fresh temp root
// and returns the root path.
func buildTree(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", f, err)
		}
		if err := os.WriteFile(path, []byte("content\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
	return root
}

// TestLocateMatchesPattern verifies pattern filtering over a small tree
func TestLocateMatchesPattern(t *testing.T) {
	root := buildTree(t, "a/foo.txt", "a/bar.txt", "b/foo.txt")

	matches, err := Locate(root, "foo")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	want := []string{
		filepath.Join(root, "a", "foo.txt"),
		filepath.Join(root, "b", "foo.txt"),
	}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("Locate() = %v, want %v", matches, want)
	}
}

// TestLocateCaseInsensitive verifies matching ignores case in both
// the pattern and the path
func TestLocateCaseInsensitive(t *testing.T) {
	root := buildTree(t, "a/FOO.txt", "a/bar.txt")

	matches, err := Locate(root, "foo")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(matches) != 1 || filepath.Base(matches[0]) != "FOO.txt" {
		t.Errorf("Locate() = %v, want exactly FOO.txt", matches)
	}

	matches, err = Locate(root, "BAR")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(matches) != 1 || filepath.Base(matches[0]) != "bar.txt" {
		t.Errorf("Locate() = %v, want exactly bar.txt", matches)
	}
}

// TestLocateRegexSemantics verifies the pattern is a regular expression
// over the full path
func TestLocateRegexSemantics(t *testing.T) {
	root := buildTree(t, "a/foo.txt", "a/foo.txt.bak", "b/food.go")

	matches, err := Locate(root, `foo.*\.txt$`)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	want := []string{filepath.Join(root, "a", "foo.txt")}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("Locate() = %v, want %v", matches, want)
	}
}

// TestLocateNoMatches verifies an empty result is not an error
func TestLocateNoMatches(t *testing.T) {
	root := buildTree(t, "a/foo.txt")

	matches, err := Locate(root, "nothing-matches-this")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Locate() = %v, want empty", matches)
	}
}

// TestLocateExcludesDirectories verifies only regular files are returned
// even when a directory name matches the pattern
func TestLocateExcludesDirectories(t *testing.T) {
	root := buildTree(t, "foo/bar.md")

	matches, err := Locate(root, "foo$")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Locate() = %v, want empty (directories excluded)", matches)
	}
}

// TestLocateDeterministicOrder verifies repeated runs against an
// unchanged tree produce the same order
func TestLocateDeterministicOrder(t *testing.T) {
	root := buildTree(t, "c/x.txt", "a/x.txt", "b/x.txt", "a/y.txt")

	first, err := Locate(root, "x")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Locate(root, "x")
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("order changed between runs: %v vs %v", first, again)
		}
	}
}

// TestLocateNoSuchDirectory verifies the missing-root failure mode
func TestLocateNoSuchDirectory(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "does-not-exist"), "foo")
	if !errors.Is(err, ErrNoSuchDirectory) {
		t.Errorf("Locate() error = %v, want ErrNoSuchDirectory", err)
	}
}

// TestLocateRootIsFile verifies a non-directory root is rejected
func TestLocateRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Locate(file, "foo")
	if !errors.Is(err, ErrNoSuchDirectory) {
		t.Errorf("Locate() error = %v, want ErrNoSuchDirectory", err)
	}
}

// TestLocateInvalidPattern verifies malformed patterns fail up front
func TestLocateInvalidPattern(t *testing.T) {
	root := buildTree(t, "a/foo.txt")

	_, err := Locate(root, "[unclosed")
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("Locate() error = %v, want ErrInvalidPattern", err)
	}
}
