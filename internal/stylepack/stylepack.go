/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

// Package stylepack packages a library's styles directory as a portable ZIP
// so label designs can share fonts, swatches and snippets between stores.
package stylepack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "golabeldesigner/internal/log"
)

const manifestName = "stylepack.manifest.txt"

// ExportLibraryStyles zips the library's styles directory (<library>/styles)
// into a single .zip file. The archive preserves the directory structure and
// adds a manifest file at the root for quick human inspection. A missing or
// empty styles directory still produces an archive with only the manifest.
func ExportLibraryStyles(libraryRoot string, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "export").With(slog.String("library", libraryRoot))
	if strings.TrimSpace(libraryRoot) == "" {
		return errors.New("libraryRoot is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	stylesDir := filepath.Join(libraryRoot, "styles")
	if _, err := os.Stat(stylesDir); os.IsNotExist(err) {
		if err := os.MkdirAll(stylesDir, 0o755); err != nil {
			return fmt.Errorf("ensure styles dir: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	manifest := fmt.Sprintf("Go Label Designer Style Pack\nCreated: %s\nLibrary: %s\n\nContents mirror the library's /styles directory.\n",
		time.Now().Format(time.RFC3339), libraryRoot)
	w, err := zw.Create(manifestName)
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	added := 0
	err = filepath.Walk(stylesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(libraryRoot, path)
		if err != nil {
			return err
		}
		// Forward slashes inside the zip so packs travel between platforms.
		fw, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		if _, err := io.Copy(fw, f); err != nil {
			return err
		}
		added++
		return nil
	})
	if err != nil {
		l.Error("zip build failed", slog.Any("err", err))
		return fmt.Errorf("build zip: %w", err)
	}
	l.Info("style pack exported", slog.Int("files", added), slog.String("zip", destZipPath))
	return nil
}

// InstallPack extracts the given .zip pack into the library's styles
// directory. Entries without a styles/ prefix are placed under styles/;
// entries whose cleaned path would escape the library are dropped. Existing
// files are never overwritten. Returns the count of files installed (skipped
// files are not counted).
func InstallPack(libraryRoot string, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "install").With(slog.String("library", libraryRoot))
	if strings.TrimSpace(libraryRoot) == "" {
		return 0, errors.New("libraryRoot is required")
	}
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	stylesDir := filepath.Join(libraryRoot, "styles")
	if err := os.MkdirAll(stylesDir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure styles dir: %w", err)
	}

	r, err := zip.OpenReader(packZipPath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	// ErrInsecurePath still returns a usable reader; the per-entry guard
	// below drops the offending names.
	defer func() { _ = r.Close() }()

	absStyles, err := filepath.Abs(stylesDir)
	if err != nil {
		return 0, err
	}

	installed := 0
	for _, f := range r.File {
		name := f.Name
		if name == manifestName {
			continue
		}
		targetRel := name
		if !strings.HasPrefix(targetRel, "styles/") {
			targetRel = "styles/" + targetRel
		}
		targetPath := filepath.Join(libraryRoot, filepath.FromSlash(targetRel))
		abs, err := filepath.Abs(targetPath)
		if err != nil {
			return installed, err
		}
		if abs != absStyles && !strings.HasPrefix(abs, absStyles+string(os.PathSeparator)) {
			l.Warn("drop entry escaping styles dir", slog.String("name", name))
			continue
		}
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing file", slog.String("path", targetPath))
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return installed, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return installed, err
		}
		rc, err := f.Open()
		if err != nil {
			return installed, err
		}
		out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			_ = rc.Close()
			return installed, err
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return installed, err
		}
		_ = out.Close()
		_ = rc.Close()
		installed++
	}
	l.Info("style pack installed", slog.Int("files", installed))
	return installed, nil
}
