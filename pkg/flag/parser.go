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

import (
	"flag"
	stdlog "log"
	"os"
	"strconv"

	"github.com/Gene1968/OS-IAR-perms/pkg/inventory"
	"github.com/Gene1968/OS-IAR-perms/pkg/log"
)

const logLevelEnv = "OSIARPERMS_LOG_LEVEL"

// InitFlags registers CLI flags and env overrides. The single positional
// argument is the target directory or .iar archive, defaulting to the
// current directory.
func InitFlags() {
	// Set default values
	EveryonePerms = -1
	NextPerms = -1
	ClearMask = uint(inventory.DefaultClearMask)
	Recursive = true
	Pattern = "*.xml"
	LogLevel = 6

	// First, set default values from environment variables
	if levelFromEnv := os.Getenv(logLevelEnv); levelFromEnv != "" {
		level, err := strconv.Atoi(levelFromEnv)
		if err != nil {
			stdlog.Panicf("Failed to parse %s: %v", logLevelEnv, err)
		}
		LogLevel = level
	}

	// Then define flags with current values as defaults
	flag.BoolVar(&MaxPerms, "max-perms", MaxPerms, "Set maximum permissions (2147483647) instead of standard full permissions")
	flag.BoolVar(&Standard, "standard", Standard, "Set standard full permissions (581639); this is the default")
	flag.IntVar(&EveryonePerms, "everyone", EveryonePerms, "Override the EveryOnePermissions target value")
	flag.IntVar(&NextPerms, "next", NextPerms, "Override the NextPermissions target value")
	flag.StringVar(&Group, "group", Group, "Assign items to this group UUID instead of clearing the group")
	flag.StringVar(&Creator, "creator", Creator, "Rewrite CreatorUUID to this value")
	flag.UintVar(&ClearMask, "clear-mask", ClearMask, "Flags bits to clear, decimal or 0x-hex; the container-inventory bit is always kept")
	flag.BoolVar(&Recursive, "recursive", Recursive, "Process subdirectories recursively")
	flag.BoolVar(&NoRecursive, "no-recursive", NoRecursive, "Only process the top-level directory")
	flag.BoolVar(&Backup, "backup", Backup, "Create .backup copies before modifying files")
	flag.BoolVar(&DryRun, "dry-run", DryRun, "Show what would change without writing anything")
	flag.BoolVar(&Verbose, "verbose", Verbose, "Show detailed per-file output")
	flag.BoolVar(&NoConfirm, "no-confirm", NoConfirm, "Skip the confirmation prompt")
	flag.StringVar(&Pattern, "pattern", Pattern, "Candidate filename glob")
	flag.IntVar(&LogLevel, "log-level", LogLevel, "Log level (0-2=Fatal, 3=Error, 4=Warning, 5/6=Info, 7=Debug, default: 6)")

	// Parse flags - these will override environment variables if provided
	flag.Parse()

	if NoRecursive {
		Recursive = false
	}

	TargetPath = flag.Arg(0)
	if TargetPath == "" {
		TargetPath = "."
	}

	// Log final values
	log.Debug("target path is: %s", TargetPath)
	log.Debug("clear mask is: %#x", ClearMask)
}
