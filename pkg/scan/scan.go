// Copyright 2026 The OS-IAR-perms Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scan lists candidate record files for a run.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Gene1968/OS-IAR-perms/pkg/log"
)

// Candidates returns the files under root whose names match pattern, sorted
// so runs are reproducible. A recursive scan descends into subdirectories,
// otherwise only root itself is searched. Symlinks are not followed.
func Candidates(root, pattern string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access target directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target %s is not a directory", root)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid candidate pattern %q", pattern)
	}

	glob := pattern
	if recursive {
		glob = "**/" + pattern
	}

	var files []string
	err = doublestar.GlobWalk(os.DirFS(root), glob, func(path string, d fs.DirEntry) error {
		files = append(files, filepath.Join(root, filepath.FromSlash(path)))
		return nil
	}, doublestar.WithFilesOnly(), doublestar.WithNoFollow())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(files)
	log.Debug("found %d candidate files under %s", len(files), root)
	return files, nil
}
