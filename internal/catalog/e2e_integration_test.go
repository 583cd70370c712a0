/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"golabeldesigner/internal/storage"
)

func TestE2E_CatalogSchemaAndSearch(t *testing.T) {
	db := openPGForTest(t)
	defer func() { _ = db.Close() }()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Insert a library and an index snapshot the way the push route does
	var lid int64
	stable := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	if err := db.QueryRowContext(ctx, `INSERT INTO libraries(stable_id, name, description) VALUES($1,$2,$3) RETURNING id`, stable, "E2E Library", "demo").Scan(&lid); err != nil {
		t.Fatalf("insert library: %v", err)
	}
	snap := map[string]any{"ok": true, "version": 1}
	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO index_snapshots(library_id, version, snapshot) VALUES($1,$2,$3)`, lid, 1, string(b)); err != nil {
		t.Fatalf("insert snapshot: %v", err)
	}
	// Fetch latest snapshot similar to server route
	var ver int64
	var raw string
	if err := db.QueryRowContext(ctx, `SELECT version, snapshot FROM index_snapshots WHERE library_id=$1 ORDER BY version DESC, id DESC LIMIT 1`, lid).Scan(&ver, &raw); err != nil {
		t.Fatalf("select snapshot: %v", err)
	}
	if ver != 1 || raw == "" {
		t.Fatalf("unexpected snapshot ver=%d raw_empty=%v", ver, raw == "")
	}

	// Seed a document and search it end-to-end through SearchPG
	if _, err := db.ExecContext(ctx, `DELETE FROM documents WHERE id = 2001`); err != nil {
		t.Fatalf("clear doc: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO documents(id, library_id, doc_type, external_ref, raw_text, template_name) VALUES($1,$2,$3,$4,$5,$6)`, 2001, lid, "template", "template:weekend-promo", "Weekend promo labels for the dairy aisle", "weekend-promo"); err != nil {
		t.Fatalf("seed doc: %v", err)
	}
	res, err := SearchPG(ctx, db, lid, storage.SearchQuery{Text: "dairy"})
	if err != nil {
		t.Fatalf("searchpg: %v", err)
	}
	if len(res) == 0 || res[0].DocID != 2001 {
		t.Fatalf("expected result doc 2001, got %+v", res)
	}
	if res[0].Template != "weekend-promo" {
		t.Fatalf("expected template name on result, got %+v", res[0])
	}
}
