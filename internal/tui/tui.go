/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package tui is the terminal front end of the designer. It drives the same
// interaction machine as the desktop canvas, so selection, dragging and inline
// text editing behave identically; only the rendering differs.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"golabeldesigner/internal/storage"
)

// Run opens the library at dir (or the working directory when dir is empty)
// and blocks until the user quits.
func Run(dir string) error {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = wd
	}
	lh, err := storage.Open(dir)
	if err != nil {
		return err
	}
	m := newAppModel(lh)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
