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

package flag

var (
	// TargetPath is the directory or .iar archive to process.
	TargetPath string

	// MaxPerms selects the maximum-permission preset instead of standard.
	MaxPerms bool

	// Standard explicitly selects the standard preset (the default).
	Standard bool

	// EveryonePerms overrides the EveryOnePermissions target; -1 leaves the preset value.
	EveryonePerms int

	// NextPerms overrides the NextPermissions target; -1 leaves the preset value.
	NextPerms int

	// Group overrides the GroupID target with a specific UUID.
	Group string

	// Creator rewrites CreatorUUID to this value when set.
	Creator string

	// ClearMask is the flags bitmask to clear, decimal or 0x-hex.
	ClearMask uint

	// Recursive walks subdirectories for candidate files.
	Recursive bool

	// NoRecursive restricts the scan to the top-level directory.
	NoRecursive bool

	// Backup writes a .backup sibling before overwriting each file.
	Backup bool

	// DryRun reports would-be changes without writing anything.
	DryRun bool

	// Verbose prints per-file skip reasons and per-field change lines.
	Verbose bool

	// NoConfirm suppresses the interactive confirmation prompt.
	NoConfirm bool

	// Pattern is the candidate filename glob.
	Pattern string

	// LogLevel controls log verbosity, syslog-style 0-7.
	LogLevel int
)
