package auth

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestSaveLoadClear verifies the token round-trips and clears cleanly.
func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "token")
	s := NewStore(path)

	if tok, err := s.Load(); err != nil || tok != "" {
		t.Fatalf("Load before save = (%q, %v), want empty", tok, err)
	}

	if err := s.Save("abc.def.ghi"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tok, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tok != "abc.def.ghi" {
		t.Errorf("token = %q", tok)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("token file mode = %o, want 0600", perm)
		}
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}
	if tok, _ := s.Load(); tok != "" {
		t.Errorf("token survives clear: %q", tok)
	}
}
