/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// language=SQL
// dialect=SQLite
const insertListSnapshotSQL = `INSERT INTO list_snapshots(ts, text) VALUES (?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestListSnapshotSQL = `SELECT ts, text FROM list_snapshots ORDER BY ts DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const listListSnapshotsSQL = `SELECT ts, text FROM list_snapshots ORDER BY ts DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneOldListSnapshotsSQL = `DELETE FROM list_snapshots WHERE id NOT IN (
	SELECT id FROM list_snapshots ORDER BY ts DESC LIMIT ?
)`

// SaveProductListSnapshot persists a product list snapshot full text with a timestamp.
// The index database is ephemeral and derived; this history is meant for editor change tracking, not canonical storage.
func SaveProductListSnapshot(ctx context.Context, lh *LibraryHandle, text string, ts time.Time) error {
	if lh == nil {
		return errors.New("nil LibraryHandle")
	}
	// Open or init index DB
	db, err := InitOrOpenIndex(lh.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, insertListSnapshotSQL, ts.UTC().Format(time.RFC3339Nano), text)
	return err
}

// GetLatestProductListSnapshot returns the latest product list snapshot text and timestamp, or empty if none.
func GetLatestProductListSnapshot(ctx context.Context, lh *LibraryHandle) (string, time.Time, error) {
	if lh == nil {
		return "", time.Time{}, errors.New("nil LibraryHandle")
	}
	db, err := InitOrOpenIndex(lh.Root)
	if err != nil {
		return "", time.Time{}, err
	}
	defer func() { _ = db.Close() }()
	var tsStr string
	var txt string
	err = db.QueryRowContext(ctx, selectLatestListSnapshotSQL).Scan(&tsStr, &txt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return txt, time.Time{}, nil
	}
	return txt, ts, nil
}

// ListProductListSnapshots returns up to limit most recent product list snapshots.
func ListProductListSnapshots(ctx context.Context, lh *LibraryHandle, limit int) ([]struct {
	TS   time.Time
	Text string
}, error) {
	if lh == nil {
		return nil, errors.New("nil LibraryHandle")
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenIndex(lh.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, listListSnapshotsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []struct {
		TS   time.Time
		Text string
	}
	for rows.Next() {
		var tsStr string
		var txt string
		if err := rows.Scan(&tsStr, &txt); err != nil {
			return nil, err
		}
		ts, _ := time.Parse(time.RFC3339Nano, tsStr)
		out = append(out, struct {
			TS   time.Time
			Text string
		}{TS: ts, Text: txt})
	}
	return out, rows.Err()
}

// PruneOldProductListSnapshots keeps at most keepLast snapshots and deletes older ones.
func PruneOldProductListSnapshots(ctx context.Context, lh *LibraryHandle, keepLast int) (int64, error) {
	if lh == nil {
		return 0, errors.New("nil LibraryHandle")
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenIndex(lh.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneOldListSnapshotsSQL, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
