package cookies

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestSafeCopy_CopiesCompanions(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := "/profile/cookies.sqlite"
	files := map[string]string{
		src:          "main db",
		src + "-wal": "wal data",
		src + "-shm": "shm data",
	}
	for p, content := range files {
		if err := afero.WriteFile(fs, p, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	copied, cleanup, err := SafeCopy(fs, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	if filepath.Base(copied) != "cookies.sqlite" {
		t.Fatalf("expected copied base 'cookies.sqlite', got '%s'", filepath.Base(copied))
	}
	for suffix, want := range map[string]string{"": "main db", "-wal": "wal data", "-shm": "shm data"} {
		got, err := os.ReadFile(copied + suffix)
		if err != nil {
			t.Fatalf("failed to read copy%s: %v", suffix, err)
		}
		if string(got) != want {
			t.Errorf("expected '%s', got '%s'", want, got)
		}
	}
}

func TestSafeCopy_NoCompanions(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/Cookies", []byte("db"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	copied, cleanup, err := SafeCopy(fs, "/Cookies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()
	if _, err := os.Stat(copied + "-wal"); !os.IsNotExist(err) {
		t.Fatalf("expected no WAL copy, got %v", err)
	}
}

func TestSafeCopy_Rejects(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/dir", 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := afero.WriteFile(fs, "/empty", nil, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	for _, p := range []string{"/dir", "/empty", "/missing"} {
		if _, _, err := SafeCopy(fs, p); err == nil {
			t.Errorf("%s: expected error, got nil", p)
		}
	}
}

func TestSafeCopy_CleanupRemovesDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/Cookies", []byte("db"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	copied, cleanup, err := SafeCopy(fs, "/Cookies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cleanup()
	if _, err := os.Stat(filepath.Dir(copied)); !os.IsNotExist(err) {
		t.Fatalf("expected temp dir removed, got %v", err)
	}
}
