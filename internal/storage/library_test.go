package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golabeldesigner/internal/domain"
)

func TestInitLibraryCreatesStructureAndManifest(t *testing.T) {
	root := t.TempDir()
	lib := domain.Library{Name: "Test Library", Templates: []domain.Template{}}

	lh, err := InitLibrary(root, lib)
	if err != nil {
		t.Fatalf("InitLibrary error: %v", err)
	}
	if lh == nil {
		t.Fatalf("InitLibrary returned nil handle")
	}

	// Check manifest exists
	if lh.ManifestPath == "" {
		t.Fatalf("ManifestPath not set")
	}
	// Load manifest and compare
	b, err := os.ReadFile(lh.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var got domain.Library
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if got.Name != lib.Name {
		t.Fatalf("manifest name mismatch: got %q want %q", got.Name, lib.Name)
	}

	// Standard subdirs should exist
	wantDirs := []string{"templates", "products", "styles", "exports", BackupsDirName}
	for _, d := range wantDirs {
		p := filepath.Join(root, d)
		if fi, err := os.Stat(p); err != nil || !fi.IsDir() {
			t.Fatalf("expected directory %s to exist", p)
		}
	}
}

func TestSaveCreatesTimestampedBackup(t *testing.T) {
	root := t.TempDir()
	lib := domain.Library{Name: "Backup Test", Templates: []domain.Template{}}
	lh, err := InitLibrary(root, lib)
	if err != nil {
		t.Fatalf("InitLibrary error: %v", err)
	}

	// Change something and save again to force a backup
	lh.Library.Metadata.Notes = "changed"
	if err := Save(lh); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// Expect at least one .bak file under backups
	ents, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil {
		t.Fatalf("read backups dir: %v", err)
	}
	var bakCount int
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ManifestFileName+".") && strings.HasSuffix(name, ".bak") {
			bakCount++
		}
	}
	if bakCount == 0 {
		t.Fatalf("expected at least one backup file, found 0")
	}
}

func TestOpenFallsBackToLatestBackupOnCorruption(t *testing.T) {
	root := t.TempDir()
	lib := domain.Library{Name: "Open From Backup", Templates: []domain.Template{}}
	lh, err := InitLibrary(root, lib)
	if err != nil {
		t.Fatalf("InitLibrary error: %v", err)
	}

	// Force a backup to exist by saving
	lh.Library.Metadata.Notes = "touch"
	if err := Save(lh); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// Corrupt the manifest
	if err := os.WriteFile(lh.ManifestPath, []byte("{ this is not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}

	// Now opening should succeed via latest backup
	opened, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if opened.Library.Name != lib.Name {
		t.Fatalf("opened library name mismatch: got %q want %q", opened.Library.Name, lib.Name)
	}
}

func TestAutosaveCrashSnapshotWritesFile(t *testing.T) {
	root := t.TempDir()
	lib := domain.Library{Name: "Crash Snapshot", Templates: []domain.Template{}}
	lh, err := InitLibrary(root, lib)
	if err != nil {
		t.Fatalf("InitLibrary error: %v", err)
	}

	path, err := AutosaveCrashSnapshot(lh)
	if err != nil {
		t.Fatalf("AutosaveCrashSnapshot error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file does not exist: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var got domain.Library
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if got.Name != lib.Name {
		t.Fatalf("snapshot content mismatch: got %q want %q", got.Name, lib.Name)
	}
}
