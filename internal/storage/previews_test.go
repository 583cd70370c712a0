/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"golabeldesigner/internal/domain"
)

func TestPreviewsPutGetAndEvict(t *testing.T) {
	root := t.TempDir()
	lh, err := InitLibrary(root, domain.Library{Name: "Prev Test"})
	if err != nil || lh == nil {
		t.Fatalf("InitLibrary: %v", err)
	}
	// Give background index init a moment to settle to avoid lock contention
	time.Sleep(200 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Set a tiny cap to force eviction quickly
	os.Setenv("GLD_PREVIEWS_MAX_BYTES", "64")
	defer os.Unsetenv("GLD_PREVIEWS_MAX_BYTES")

	inull := sql.NullInt64{Valid: false}
	// Insert 3 previews of 40 bytes each
	blobA := make([]byte, 40)
	blobB := make([]byte, 40)
	blobC := make([]byte, 40)
	if err := PutPreview(ctx, lh.Root, "shelf-price", inull, PreviewKindThumb, 100, 100, blobA); err != nil {
		t.Fatalf("put A: %v", err)
	}
	time.Sleep(10 * time.Millisecond) // different access times
	if err := PutPreview(ctx, lh.Root, "shelf-price", inull, PreviewKindThumb, 200, 200, blobB); err != nil {
		t.Fatalf("put B: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := PutPreview(ctx, lh.Root, "shelf-price", inull, PreviewKindThumb, 300, 300, blobC); err != nil {
		t.Fatalf("put C: %v", err)
	}

	// Cap is 64 bytes; after inserts total 120 -> eviction should have occurred, leaving last inserted(s)
	total, err := TotalPreviewBytes(ctx, lh.Root)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total > 64 {
		t.Fatalf("expected eviction to <=64 bytes, got %d", total)
	}

	// Access the 200x200 one (if present)
	_, _ = GetPreview(ctx, lh.Root, "shelf-price", inull, PreviewKindThumb, 200, 200)
	// Insert another 40-byte; should evict oldest by last_access
	if err := PutPreview(ctx, lh.Root, "shelf-price", inull, PreviewKindThumb, 400, 400, make([]byte, 40)); err != nil {
		t.Fatalf("put D: %v", err)
	}
	if total2, err := TotalPreviewBytes(ctx, lh.Root); err != nil || total2 > 64 {
		t.Fatalf("post total: %v / %d", err, total2)
	}
}

func TestGetOrCreatePreview(t *testing.T) {
	root := t.TempDir()
	lh, err := InitLibrary(root, domain.Library{Name: "Prev Create"})
	if err != nil || lh == nil {
		t.Fatalf("InitLibrary: %v", err)
	}
	// Allow background indexer to settle
	time.Sleep(200 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	inull := sql.NullInt64{Valid: false}
	calls := 0
	gen := func(context.Context) ([]byte, error) { calls++; return []byte("abcd"), nil }
	b, err := GetOrCreatePreview(ctx, lh.Root, "promo", inull, PreviewKindGeom, 0, 0, gen)
	if err != nil {
		t.Fatalf("getOrCreate: %v", err)
	}
	if string(b) != "abcd" {
		t.Fatalf("unexpected data: %q", string(b))
	}
	// Second call should hit cache and not call generator
	b, err = GetOrCreatePreview(ctx, lh.Root, "promo", inull, PreviewKindGeom, 0, 0, gen)
	if err != nil {
		t.Fatalf("getOrCreate 2: %v", err)
	}
	if calls != 1 {
		t.Fatalf("generator should be called once, got %d", calls)
	}
}
