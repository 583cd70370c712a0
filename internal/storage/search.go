/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SearchQuery describes the in-app search request.
// Text uses SQLite FTS5 syntax (simple terms, phrases in quotes, AND/OR/NOT).
// Filters are optional. Tags should be provided without the leading @.
// Types can restrict to kinds like: template, item_text, product, stock, note, list_section, etc.
// Limit/Offset implement pagination; reasonable defaults applied if zero.
type SearchQuery struct {
	Text     string
	Template string
	SKU      string
	Stock    string
	Tags     []string
	Types    []string
	Limit    int
	Offset   int
}

// SearchResult represents a single match row.
// Snippet is an optional highlighted excerpt using [ ] markers when FTS text is used.
// Template is "" when the match is not tied to a template.
// DocID can be used with WhereUsed to find references.
type SearchResult struct {
	DocID    int64
	Type     string
	Path     string
	Template string
	Snippet  string
}

// Search performs full-text search with optional filters over the embedded index.
// When q.Text is empty, it falls back to a non-FTS scan over documents with filters applied.
func Search(ctx context.Context, libraryRoot string, q SearchQuery) ([]SearchResult, error) {
	if strings.TrimSpace(libraryRoot) == "" {
		return nil, errors.New("library root is required")
	}
	db, err := InitOrOpenIndex(libraryRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return searchDB(ctx, db, q)
}

func searchDB(ctx context.Context, db *sql.DB, q SearchQuery) ([]SearchResult, error) {
	// Build dynamic SQL
	var args []any
	var sb strings.Builder
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		sb.WriteString("SELECT d.doc_id, d.type, d.path, COALESCE(d.template_name,''), snippet(fts_documents, 0, '[', ']', '…', 10)\n")
		sb.WriteString("FROM fts_documents JOIN documents d ON fts_documents.rowid = d.doc_id\n")
		sb.WriteString("WHERE fts_documents MATCH ?\n")
		args = append(args, q.Text)
	} else {
		sb.WriteString("SELECT d.doc_id, d.type, d.path, COALESCE(d.template_name,''), ''\n")
		sb.WriteString("FROM documents d\nWHERE 1=1\n")
	}
	// Filters
	// Types filter (IN list)
	if len(q.Types) > 0 {
		sb.WriteString(" AND d.type IN (" + placeholders(len(q.Types)) + ")\n")
		for _, t := range q.Types {
			args = append(args, t)
		}
	}
	// Template filter: prefer exact template_name when populated, else fallback to path contains
	if s := strings.TrimSpace(q.Template); s != "" {
		ss := strings.ToLower(s)
		sb.WriteString(" AND ( (d.template_name IS NOT NULL AND lower(d.template_name)=?) OR lower(d.path) LIKE ? )\n")
		args = append(args, ss, likeContains("template:"+ss))
	}
	// SKU filter: prefer exact sku column when populated, else fallback to text contains
	if s := strings.TrimSpace(q.SKU); s != "" {
		ss := strings.ToLower(s)
		sb.WriteString(" AND ( (d.sku IS NOT NULL AND lower(d.sku)=?) OR lower(d.text) LIKE ? )\n")
		args = append(args, ss, likeContains(ss))
	}
	// Stock filter: stock-related content or text contains the stock token
	if s := strings.TrimSpace(q.Stock); s != "" {
		ss := strings.ToLower(s)
		sb.WriteString(" AND ( lower(d.path) LIKE ? OR lower(d.text) LIKE ? )\n")
		args = append(args, likeContains("stock:"+ss), likeContains(ss))
	}
	// Tags: require all tags to appear as @tag tokens in text
	for _, t := range q.Tags {
		tt := strings.ToLower(strings.TrimSpace(t))
		if tt == "" {
			continue
		}
		sb.WriteString(" AND lower(d.text) LIKE ?\n")
		args = append(args, likeContains("@"+tt))
	}
	// Order and pagination
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	sb.WriteString("ORDER BY d.template_name NULLS LAST, d.doc_id\n")
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, q.Offset)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var tpl sql.NullString
		var sn sql.NullString
		if err := rows.Scan(&r.DocID, &r.Type, &r.Path, &tpl, &sn); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if tpl.Valid {
			r.Template = tpl.String
		}
		if sn.Valid {
			r.Snippet = sn.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// WhereUsed returns documents that reference the given target document ID using cross_refs.
// Typical use: pass the doc_id of a stock or a product row to list the templates bound to it.
func WhereUsed(ctx context.Context, libraryRoot string, targetDocID int64, limit, offset int) ([]SearchResult, error) {
	if strings.TrimSpace(libraryRoot) == "" {
		return nil, errors.New("library root is required")
	}
	db, err := InitOrOpenIndex(libraryRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	q := `SELECT d.doc_id, d.type, d.path, COALESCE(d.template_name,''), ''
		FROM cross_refs x
		JOIN documents d ON d.doc_id = x.from_id
		WHERE x.to_id = ?
		ORDER BY d.template_name NULLS LAST, d.doc_id
		LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, q, targetDocID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("where-used query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
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

// WhereUsedByPath resolves a document by path then returns references to it.
func WhereUsedByPath(ctx context.Context, libraryRoot string, path string, limit, offset int) ([]SearchResult, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}
	db, err := InitOrOpenIndex(libraryRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	var id int64
	err = db.QueryRowContext(ctx, "SELECT doc_id FROM documents WHERE path=?", path).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []SearchResult{}, nil
		}
		return nil, err
	}
	return WhereUsed(ctx, libraryRoot, id, limit, offset)
}

func likeContains(s string) string { return "%" + s + "%" }

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := strings.Builder{}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("?")
	}
	return b.String()
}
