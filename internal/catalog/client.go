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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an HTTP client for the catalog API. The desktop app and the CLI
// use it behind the enable_catalog feature flag.
type Client struct {
	BaseURL string
	Token   string // bearer token
	client  *http.Client
}

// NewClient creates a new catalog client. baseURL may include a trailing slash; it will be normalized.
func NewClient(baseURL string, token string) *Client {
	b := strings.TrimRight(baseURL, "/")
	return &Client{
		BaseURL: b,
		Token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SetTimeout overrides the default 10s request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.client.Timeout = d
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server %s %s: %s", method, u.Path, resp.Status)
	}
	if dest == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(dest)
}

// Library is a minimal projection for listing.
type Library struct {
	ID        int64     `json:"id"`
	StableID  string    `json:"stable_id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// ListLibraries returns the libraries published to the catalog.
func (c *Client) ListLibraries(ctx context.Context) ([]Library, error) {
	var list []Library
	if err := c.doJSON(ctx, http.MethodGet, "/api/libraries", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// IndexSnapshotEnvelope matches the server response for the latest index snapshot of a library.
type IndexSnapshotEnvelope struct {
	LibraryID int64       `json:"library_id"`
	Version   int64       `json:"version"`
	CreatedAt string      `json:"created_at"`
	Snapshot  interface{} `json:"snapshot"`
}

// GetIndexSnapshot fetches the latest index snapshot for a library.
func (c *Client) GetIndexSnapshot(ctx context.Context, libraryID int64) (*IndexSnapshotEnvelope, error) {
	var env IndexSnapshotEnvelope
	path := fmt.Sprintf("/api/libraries/%d/index", libraryID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// RequestToken asks the server for a bearer token. The endpoint is open; the
// server decides whether to honor the requested subject and TTL.
func (c *Client) RequestToken(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	body := map[string]any{"subject": subject}
	if ttl > 0 {
		body["ttl_seconds"] = int64(ttl / time.Second)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/token", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// PushIndexSnapshot publishes a new index snapshot for a library and returns
// the version the server assigned to it.
func (c *Client) PushIndexSnapshot(ctx context.Context, libraryID int64, snapshot any) (int64, error) {
	var resp struct {
		LibraryID int64 `json:"library_id"`
		Version   int64 `json:"version"`
	}
	path := fmt.Sprintf("/api/libraries/%d/index", libraryID)
	if err := c.doJSON(ctx, http.MethodPost, path, snapshot, &resp); err != nil {
		return 0, err
	}
	return resp.Version, nil
}
