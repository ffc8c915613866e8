package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// IsArchive reports whether path names a zip archive
func IsArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// Extract unpacks a zip archive into a fresh temporary directory and returns
// the effective scan root together with a cleanup function that removes the
// temporary directory. The cleanup function must be called on every exit path.
//
// If the archive's top level contains exactly one non-hidden entry and that
// entry is a directory, the directory becomes the scan root (the common
// "single wrapped folder" layout). Every other shape uses the extraction
// root itself.
func Extract(path string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "envrisk-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	if err := extractInto(path, tmpDir); err != nil {
		cleanup()
		return "", nil, err
	}

	root, err := scanRoot(tmpDir)
	if err != nil {
		cleanup()
		return "", nil, err
	}

	return root, cleanup, nil
}

func extractInto(path string, dest string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := extractEntry(file, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(file *zip.File, dest string) error {
	// Reject entries that would escape the extraction root
	target := filepath.Join(dest, filepath.FromSlash(file.Name))
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry escapes extraction root: %s", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to read archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	return nil
}

// scanRoot applies the single-wrapped-folder tie-break
func scanRoot(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var visible []os.DirEntry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		visible = append(visible, entry)
	}

	if len(visible) == 1 && visible[0].IsDir() {
		return filepath.Join(dir, visible[0].Name()), nil
	}
	return dir, nil
}
