package digest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestTree(t *testing.T) {
	files := map[string]string{
		"puppies/banner-1/index.html":   "<html></html>",
		"puppies/banner-1/images/a.png": "a",
		"kittens/banner-1/images/b.png": "b",
	}
	a, err := Tree(buildTree(t, files))
	if err != nil {
		t.Fatalf("Tree() error: %v", err)
	}
	b, err := Tree(buildTree(t, files))
	if err != nil {
		t.Fatalf("Tree() error: %v", err)
	}
	if a != b {
		t.Errorf("identical trees hashed differently: %s != %s", a, b)
	}

	files["kittens/banner-1/images/b.png"] = "changed"
	c, err := Tree(buildTree(t, files))
	if err != nil {
		t.Fatalf("Tree() error: %v", err)
	}
	if a == c {
		t.Error("content change should change the tree digest")
	}
}

func TestTreeDistinguishesNames(t *testing.T) {
	a, _ := Tree(buildTree(t, map[string]string{"ab": "c"}))
	b, _ := Tree(buildTree(t, map[string]string{"a": "bc"}))
	if a == b {
		t.Error("moving bytes between name and content should change the digest")
	}
}

func TestTreeMissingRoot(t *testing.T) {
	if _, err := Tree(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Tree() on a missing root should fail")
	}
}

func TestFiles(t *testing.T) {
	root := buildTree(t, map[string]string{"x/y.txt": "hello"})
	got, err := Files(root)
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	if got["x/y.txt"] != Hash([]byte("hello")) {
		t.Errorf("Files()[x/y.txt] = %q", got["x/y.txt"])
	}
}
