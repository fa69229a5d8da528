package cookies

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// osFs is where copies go. The SQLite driver opens files by path, so copies
// always land on the real file system whatever fs the source lives on.
var osFs afero.Fs = afero.NewOsFs()

// SafeCopy copies a SQLite cookie file and its -wal and -shm companions,
// when present, from fs into a fresh temporary directory. It returns the
// path of the copied database and a cleanup function the caller must call.
func SafeCopy(fs afero.Fs, srcPath string) (copied string, cleanup func(), err error) {
	if err := checkSource(fs, srcPath); err != nil {
		return "", nil, err
	}

	tempDir, err := afero.TempDir(osFs, "", "warpcookie-")
	if err != nil {
		return "", nil, fmt.Errorf("error: cannot create temp directory: %w", err)
	}
	cleanup = func() {
		_ = osFs.RemoveAll(tempDir)
	}

	copied = filepath.Join(tempDir, filepath.Base(srcPath))
	if err := copyFile(fs, srcPath, copied); err != nil {
		cleanup()
		return "", nil, err
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		companion := srcPath + suffix
		if ok, _ := afero.Exists(fs, companion); ok {
			_ = copyFile(fs, companion, copied+suffix)
		}
	}
	return copied, cleanup, nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("error: cannot open source file %s: %w", src, err)
	}
	defer in.Close()

	out, err := osFs.Create(dst)
	if err != nil {
		return fmt.Errorf("error: cannot create destination file %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("error: cannot copy file: %w", err)
	}
	return nil
}
