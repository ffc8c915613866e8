package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func buildZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.zip")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer file.Close()

	w := zip.NewWriter(file)
	for name, content := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to add entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}

	return path
}

func TestIsArchive(t *testing.T) {
	if !IsArchive("project.zip") || !IsArchive("PROJECT.ZIP") {
		t.Error("Expected .zip paths detected as archives")
	}
	if IsArchive("project.tar.gz") || IsArchive("project") {
		t.Error("Non-zip paths must not be detected as archives")
	}
}

func TestExtract_WrappedFolderBecomesRoot(t *testing.T) {
	path := buildZip(t, map[string]string{
		"myapp/package.json": "{}",
		"myapp/app/page.tsx": "export default function Page() {}",
		"myapp/lib/db.ts":    "const url = process.env.DATABASE_URL;",
	})

	root, cleanup, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	defer cleanup()

	if filepath.Base(root) != "myapp" {
		t.Errorf("Expected wrapped folder as scan root, got %s", root)
	}
	if _, err := os.Stat(filepath.Join(root, "app", "page.tsx")); err != nil {
		t.Errorf("Expected extracted file under root: %v", err)
	}
}

func TestExtract_MultipleEntriesUseExtractionRoot(t *testing.T) {
	path := buildZip(t, map[string]string{
		"a.ts": "const a = 1;",
		"b.ts": "const b = 2;",
	})

	root, cleanup, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	defer cleanup()

	if _, err := os.Stat(filepath.Join(root, "a.ts")); err != nil {
		t.Errorf("Expected a.ts at extraction root: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "b.ts")); err != nil {
		t.Errorf("Expected b.ts at extraction root: %v", err)
	}
}

func TestExtract_HiddenEntriesIgnoredForUnwrap(t *testing.T) {
	path := buildZip(t, map[string]string{
		".DS_Store":       "junk",
		"myapp/lib/db.ts": "const url = process.env.DATABASE_URL;",
	})

	root, cleanup, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	defer cleanup()

	if filepath.Base(root) != "myapp" {
		t.Errorf("Hidden entries should not prevent unwrapping, got root %s", root)
	}
}

func TestExtract_CleanupRemovesTempDir(t *testing.T) {
	path := buildZip(t, map[string]string{"a.ts": "const a = 1;"})

	root, cleanup, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	cleanup()

	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("Expected temp directory removed after cleanup, stat err: %v", err)
	}
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	path := buildZip(t, map[string]string{"../escape.ts": "const a = 1;"})

	_, cleanup, err := Extract(path)
	if err == nil {
		cleanup()
		t.Fatal("Expected error for entry escaping the extraction root")
	}
}

func TestExtract_MalformedArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, _, err := Extract(path); err == nil {
		t.Fatal("Expected error for malformed archive")
	}
}
