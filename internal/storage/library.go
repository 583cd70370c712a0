/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golabeldesigner/internal/domain"
)

const (
	ManifestFileName = "label.json"
	BackupsDirName   = "backups"
)

// Standard subfolders of a library directory.
var standardSubDirs = []string{
	"templates",
	"products",
	"styles",
	"exports",
	BackupsDirName,
}

// LibraryHandle keeps track of the library state loaded/saved from disk.
// Root is the library directory containing label.json and subfolders.
// Library holds the in-memory representation of the manifest.
type LibraryHandle struct {
	Root         string
	ManifestPath string
	Library      domain.Library
}

// InitLibrary creates a new library directory at root (creating it if it doesn't exist),
// scaffolds the standard subfolders, writes the given manifest file transactionally,
// and bootstraps the embedded index (populated in the background).
func InitLibrary(root string, lib domain.Library) (*LibraryHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	// Ensure directory exists
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create library root: %w", err)
	}
	// Create standard subfolders
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create subdir %s: %w", d, err)
		}
	}

	lh := &LibraryHandle{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFileName),
		Library:      lib,
	}
	if err := Save(lh); err != nil {
		return nil, err
	}
	// Create the index file synchronously so callers can rely on its
	// existence; populate it in the background since it is derived data.
	if db, err := InitOrOpenIndex(root); err == nil {
		_ = db.Close()
		go func(l domain.Library) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_ = BuildIndexIfEmpty(ctx, root, l)
		}(lib)
	}
	return lh, nil
}

// Open loads an existing library from the given root directory.
// If the current manifest cannot be read or parsed, it will attempt last backup.
func Open(root string) (*LibraryHandle, error) {
	mpath := filepath.Join(root, ManifestFileName)
	b, err := os.ReadFile(mpath)
	if err != nil {
		// try backup
		lib, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open manifest: %w; backup attempt: %v", err, berr)
		}
		return &LibraryHandle{Root: root, ManifestPath: mpath, Library: *lib}, nil
	}
	var l domain.Library
	if uerr := json.Unmarshal(b, &l); uerr != nil {
		lib, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("parse manifest: %w; backup attempt: %v", uerr, berr)
		}
		return &LibraryHandle{Root: root, ManifestPath: mpath, Library: *lib}, nil
	}
	return &LibraryHandle{Root: root, ManifestPath: mpath, Library: l}, nil
}

// Save writes the current LibraryHandle.Library to disk with transactional semantics
// and a timestamped backup of the previous manifest (if present).
func Save(lh *LibraryHandle) error {
	if lh == nil {
		return errors.New("nil LibraryHandle")
	}
	if lh.Root == "" || lh.ManifestPath == "" {
		return errors.New("invalid LibraryHandle: missing paths")
	}
	// Marshal in human-readable form
	data, err := json.MarshalIndent(lh.Library, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')

	// Ensure backups dir exists
	bdir := filepath.Join(lh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}

	// If a current manifest exists, copy it to a timestamped backup before replacing
	if _, statErr := os.Stat(lh.ManifestPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405")
		bname := fmt.Sprintf("%s.%s.bak", ManifestFileName, stamp)
		bpath := filepath.Join(bdir, bname)
		if cerr := copyFile(lh.ManifestPath, bpath); cerr != nil {
			return fmt.Errorf("backup current manifest: %w", cerr)
		}
	}

	// Transactional write: to temp file in same directory, then rename over target
	dir := filepath.Dir(lh.ManifestPath)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", ManifestFileName, os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp manifest: %w", werr)
	}
	// On Windows, replace by removing destination first if needed
	if _, err := os.Stat(lh.ManifestPath); err == nil {
		_ = os.Remove(lh.ManifestPath)
	}
	if rerr := os.Rename(temp, lh.ManifestPath); rerr != nil {
		// attempt cleanup temp
		_ = os.Remove(temp)
		return fmt.Errorf("replace manifest: %w", rerr)
	}
	return nil
}

// SaveAs writes the manifest to a new root folder, scaffolding structure if needed, and updates the handle.
func SaveAs(lh *LibraryHandle, newRoot string) error {
	if lh == nil {
		return errors.New("nil LibraryHandle")
	}
	if newRoot == "" {
		return errors.New("new root is empty")
	}
	if err := os.MkdirAll(newRoot, 0o755); err != nil {
		return fmt.Errorf("create new root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(newRoot, d), 0o755); err != nil {
			return fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	lh.Root = newRoot
	lh.ManifestPath = filepath.Join(newRoot, ManifestFileName)
	return Save(lh)
}

// AutosaveCrashSnapshot writes the in-memory library to a timestamped JSON
// file under backups/, bypassing the manifest and its backup rotation. It is
// called from the panic handler where the manifest on disk may be mid-write.
func AutosaveCrashSnapshot(lh *LibraryHandle) (string, error) {
	if lh == nil {
		return "", errors.New("nil LibraryHandle")
	}
	if lh.Root == "" {
		return "", errors.New("invalid LibraryHandle: missing root")
	}
	data, err := json.MarshalIndent(lh.Library, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal autosave: %w", err)
	}
	data = append(data, '\n')
	bdir := filepath.Join(lh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(bdir, fmt.Sprintf("crash-autosave-%s.json", stamp))
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write autosave: %w", err)
	}
	return path, nil
}

// writeFileSync writes data to a file, ensures it is flushed to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return nil
}

// copyFile copies a file from src to dst (overwrites dst if exists).
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	if err := df.Sync(); err != nil {
		return err
	}
	return nil
}

// openFromLatestBackup tries to open the latest timestamped backup.
func openFromLatestBackup(root string) (*domain.Library, error) {
	bdir := filepath.Join(root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var candidates []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ManifestFileName+".") && strings.HasSuffix(name, ".bak") {
			candidates = append(candidates, filepath.Join(bdir, name))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	sort.Strings(candidates) // timestamp in name yields lexicographic order
	latest := candidates[len(candidates)-1]
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	var l domain.Library
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("parse latest backup: %w", err)
	}
	return &l, nil
}
