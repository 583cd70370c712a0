/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golabeldesigner/internal/storage"
)

// SearchPG executes a search over the Postgres documents table using tsvector and filters
// and returns results mapped to storage.SearchResult to ease parity checks with the
// embedded SQLite index.
func SearchPG(ctx context.Context, db *sql.DB, libraryID int64, q storage.SearchQuery) ([]storage.SearchResult, error) {
	var (
		args []any
		b    strings.Builder
	)
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		b.WriteString("SELECT d.id AS doc_id, d.doc_type AS type, COALESCE(d.external_ref,'') AS path, COALESCE(d.template_name,'') AS template, ")
		b.WriteString("COALESCE(ts_headline('simple', COALESCE(d.raw_text,''), plainto_tsquery('simple', $1), 'StartSel=[, StopSel=], MaxFragments=1, MaxWords=12'), '') AS snippet ")
		b.WriteString("FROM documents d WHERE d.library_id = $2 AND d.search_vector @@ plainto_tsquery('simple', $1) ")
		args = append(args, q.Text, libraryID)
	} else {
		b.WriteString("SELECT d.id AS doc_id, d.doc_type AS type, COALESCE(d.external_ref,'') AS path, COALESCE(d.template_name,'') AS template, '' AS snippet ")
		b.WriteString("FROM documents d WHERE d.library_id = $1 ")
		args = append(args, libraryID)
	}

	// Helper to add parameter and return placeholder like $n
	place := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// Types filter
	if len(q.Types) > 0 {
		b.WriteString(" AND d.doc_type = ANY (" + place(q.Types) + ") ")
	}
	// Template filter: exact template_name when populated, else path token fallback
	if s := strings.TrimSpace(q.Template); s != "" {
		ss := strings.ToLower(s)
		b.WriteString(" AND ( (d.template_name IS NOT NULL AND lower(d.template_name) = " + place(ss) + ") OR lower(COALESCE(d.external_ref,'')) LIKE " + place("%template:"+ss+"%") + " ) ")
	}
	// SKU filter: exact sku column when populated, else text fallback
	if s := strings.TrimSpace(q.SKU); s != "" {
		ss := strings.ToLower(s)
		b.WriteString(" AND ( (d.sku IS NOT NULL AND lower(d.sku) = " + place(ss) + ") OR lower(COALESCE(d.raw_text,'')) LIKE " + place("%"+ss+"%") + " ) ")
	}
	// Stock filter: stock-related refs or text containing the stock token
	if s := strings.TrimSpace(q.Stock); s != "" {
		ss := strings.ToLower(s)
		b.WriteString(" AND ( lower(COALESCE(d.external_ref,'')) LIKE " + place("%stock:"+ss+"%") + " OR lower(COALESCE(d.raw_text,'')) LIKE " + place("%"+ss+"%") + " ) ")
	}
	// Tags: require all tags to appear as @tag tokens in raw_text
	for _, t := range q.Tags {
		tt := strings.ToLower(strings.TrimSpace(t))
		if tt == "" {
			continue
		}
		b.WriteString(" AND lower(COALESCE(d.raw_text,'')) LIKE " + place("%@"+tt+"%") + " ")
	}
	// Order and pagination
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	b.WriteString(" ORDER BY d.template_name NULLS LAST, d.id ")
	b.WriteString(" LIMIT " + place(limit) + " OFFSET " + place(offset))

	rows, err := db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search pg query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []storage.SearchResult
	for rows.Next() {
		var r storage.SearchResult
		var tpl sql.NullString
		if err := rows.Scan(&r.DocID, &r.Type, &r.Path, &tpl, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if tpl.Valid {
			r.Template = tpl.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
