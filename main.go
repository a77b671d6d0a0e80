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

package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/Gene1968/OS-IAR-perms/pkg/archive"
	"github.com/Gene1968/OS-IAR-perms/pkg/flag"
	"github.com/Gene1968/OS-IAR-perms/pkg/inventory"
	"github.com/Gene1968/OS-IAR-perms/pkg/log"
	"github.com/Gene1968/OS-IAR-perms/pkg/run"
)

// main rewrites inventory item permissions under a directory or inside an
// IAR archive.
func main() {
	flag.InitFlags()

	level := flag.LogLevel
	if flag.Verbose {
		level = 7
	}
	log.SetLevel(level)

	code := realMain()
	log.Sync()
	os.Exit(code)
}

func realMain() int {
	target, err := buildTarget()
	if err != nil {
		log.Error("invalid invocation: %v", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := flag.TargetPath
	var iarPath string
	if strings.EqualFold(filepath.Ext(dir), ".iar") {
		iarPath = dir
		workDir, err := os.MkdirTemp("", "iarperms-*")
		if err != nil {
			log.Error("failed to create work directory: %v", err)
			return 1
		}
		defer os.RemoveAll(workDir)

		if err := archive.Unpack(iarPath, workDir); err != nil {
			log.Error("%v", err)
			return 1
		}
		log.Debug("expanded %s into %s", iarPath, workDir)
		dir = workDir
	}

	opts := run.Options{
		Dir:       dir,
		Pattern:   flag.Pattern,
		Recursive: flag.Recursive,
		// In archive mode the whole .iar is backed up before the repack
		// instead of littering the scratch directory with siblings.
		Backup:  flag.Backup && iarPath == "",
		DryRun:  flag.DryRun,
		Confirm: !flag.NoConfirm,
		Verbose: flag.Verbose,
	}
	runner, err := run.New(opts, target, run.Hooks{})
	if err != nil {
		log.Error("invalid invocation: %v", err)
		return 2
	}

	sum, err := runner.Run(ctx)
	switch {
	case errors.Is(err, run.ErrDeclined):
		fmt.Println("Operation cancelled.")
		return 0
	case err != nil:
		log.Error("%v", err)
		return 1
	}

	if iarPath != "" && sum.Modified > 0 && !flag.DryRun {
		if flag.Backup {
			if err := backupArchive(iarPath); err != nil {
				log.Error("%v", err)
				return 1
			}
		}
		if err := archive.Pack(dir, iarPath); err != nil {
			log.Error("%v", err)
			return 1
		}
		fmt.Printf("Rebuilt %s\n", iarPath)
	}
	return 0
}

// backupArchive copies the original archive to a .backup sibling before the
// repack replaces it.
func backupArchive(iarPath string) error {
	raw, err := os.ReadFile(iarPath)
	if err != nil {
		return fmt.Errorf("failed to back up %s: %w", iarPath, err)
	}
	info, err := os.Stat(iarPath)
	if err != nil {
		return fmt.Errorf("failed to back up %s: %w", iarPath, err)
	}
	if err := os.WriteFile(iarPath+".backup", raw, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to back up %s: %w", iarPath, err)
	}
	return nil
}

// buildTarget translates the flag surface into a rewrite target, starting
// from the chosen preset and layering the explicit overrides.
func buildTarget() (inventory.Target, error) {
	if flag.MaxPerms && flag.Standard {
		return inventory.Target{}, errors.New("choose either -max-perms or -standard, not both")
	}

	target := inventory.StandardTarget()
	if flag.MaxPerms {
		target = inventory.MaximumTarget()
	}

	if flag.EveryonePerms >= 0 {
		if int64(flag.EveryonePerms) > math.MaxUint32 {
			return target, fmt.Errorf("-everyone %d out of range", flag.EveryonePerms)
		}
		target.Everyone = uint32(flag.EveryonePerms)
	}
	if flag.NextPerms >= 0 {
		if int64(flag.NextPerms) > math.MaxUint32 {
			return target, fmt.Errorf("-next %d out of range", flag.NextPerms)
		}
		target.Next = uint32(flag.NextPerms)
	}
	if flag.Group != "" {
		id, err := uuid.Parse(flag.Group)
		if err != nil {
			return target, fmt.Errorf("invalid -group value: %w", err)
		}
		target.GroupID = id
	}
	target.Creator = flag.Creator

	if uint64(flag.ClearMask) > math.MaxUint32 {
		return target, fmt.Errorf("-clear-mask %#x out of range", flag.ClearMask)
	}
	target.ClearMask = uint32(flag.ClearMask)

	return target, nil
}
