/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"golabeldesigner/internal/catalog"
	"golabeldesigner/internal/config"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Shared catalog commands",
	}
	cmd.AddCommand(newCatalogServeCmd())
	cmd.AddCommand(newCatalogLoginCmd(app))
	cmd.AddCommand(newCatalogLibrariesCmd(app))
	cmd.AddCommand(newCatalogPullCmd(app))
	cmd.AddCommand(newCatalogPublishCmd(app))
	cmd.AddCommand(newCatalogWatchCmd(app))
	cmd.AddCommand(newCatalogDiscoverCmd(app))
	return cmd
}

// catalogClient builds an authenticated client from the user config. The
// catalog stays off unless enable_catalog is set, matching the desktop app.
func catalogClient() (*catalog.Client, error) {
	cfg, token, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !cfg.General.EnableCatalog {
		return nil, fmt.Errorf("catalog disabled; set general.enable_catalog in config or %s=1", config.EnvEnableCatalog)
	}
	if cfg.Catalog.BaseURL == "" {
		return nil, fmt.Errorf("catalog base URL not configured; run `golabeldesigner catalog login` or set %s", config.EnvCatalogURL)
	}
	c := catalog.NewClient(cfg.Catalog.BaseURL, token)
	if cfg.Catalog.TimeoutMs > 0 {
		c.SetTimeout(time.Duration(cfg.Catalog.TimeoutMs) * time.Millisecond)
	}
	return c, nil
}

func newCatalogServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog server (Postgres-backed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalog.Start()
		},
	}
}

func newCatalogLoginCmd(app *App) *cobra.Command {
	var baseURL, subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Request a token from a catalog server and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if baseURL == "" {
				baseURL = cfg.Catalog.BaseURL
			}
			if baseURL == "" {
				return writeErr(cmd, fmt.Errorf("no catalog URL; pass --url"))
			}
			c := catalog.NewClient(baseURL, "")
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			token, err := c.RequestToken(ctx, subject, ttl)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.Catalog.BaseURL = baseURL
			cfg.General.EnableCatalog = true
			if err := config.Save(cfg, token); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"url": baseURL, "subject": subject})
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "Catalog base URL (e.g. http://localhost:8080)")
	cmd.Flags().StringVar(&subject, "subject", "dev", "Token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}

func newCatalogLibrariesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "libraries",
		Short: "List the libraries published to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalogClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			list, err := c.ListLibraries(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, list)
		},
	}
}

func newCatalogPullCmd(app *App) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch the latest index snapshot of a catalog library",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalogClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			env, err := c.GetIndexSnapshot(ctx, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, env)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Catalog library id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newCatalogPublishCmd(app *App) *cobra.Command {
	var id int64
	var file string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish an index snapshot for a catalog library",
		Long: "Publish an index snapshot for a catalog library. Without --file the\n" +
			"snapshot is built from the local library: its name and template list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalogClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			var snap any
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := json.Unmarshal(data, &snap); err != nil {
					return writeErr(cmd, fmt.Errorf("snapshot file: %w", err))
				}
			} else {
				lh, err := openLib(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				names := make([]string, 0, len(lh.Library.Templates))
				for _, t := range lh.Library.Templates {
					names = append(names, t.Name)
				}
				snap = map[string]any{
					"name":         lh.Library.Name,
					"templates":    names,
					"generated_at": time.Now().UTC().Format(time.RFC3339),
				}
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			version, err := c.PushIndexSnapshot(ctx, id, snap)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"library_id": id, "version": version})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Catalog library id")
	cmd.Flags().StringVar(&file, "file", "", "Snapshot JSON file (default: built from the local library)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newCatalogWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream catalog change events until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalogClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			return c.WatchEvents(cmd.Context(), func(ev catalog.Event) {
				_ = writeOut(cmd, app, ev)
			})
		},
	}
}

func newCatalogDiscoverCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Find catalog servers on the local network via mDNS",
		RunE: func(cmd *cobra.Command, args []string) error {
			found := 0
			err := catalog.Browse(func(addr string) {
				found++
				_ = writeOut(cmd, app, map[string]any{"addr": addr})
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if found == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no catalog servers found")
			}
			return nil
		},
	}
}
