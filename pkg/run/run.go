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

// Package run drives the sequential per-file rewrite loop.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Gene1968/OS-IAR-perms/pkg/inventory"
	"github.com/Gene1968/OS-IAR-perms/pkg/log"
	"github.com/Gene1968/OS-IAR-perms/pkg/scan"
)

// backupSuffix follows the fixed sibling-file convention.
const backupSuffix = ".backup"

// ErrDeclined reports a run stopped at the confirmation gate.
var ErrDeclined = errors.New("run declined")

// Runner applies one target configuration to every candidate file under a
// directory, one file at a time.
type Runner struct {
	Opts   Options
	Target inventory.Target
	Hooks  Hooks
}

// New validates the configuration and prepares a runner, installing default
// hooks for any left unset.
func New(opts Options, target inventory.Target, hooks Hooks) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}
	r := &Runner{Opts: opts, Target: target, Hooks: hooks}
	r.SetDefaultHooks()
	return r, nil
}

// Run processes every candidate file. Per-file failures are tallied and the
// loop continues; only an unusable target directory or a declined
// confirmation return an error. Cancellation stops the loop between files,
// never mid-file.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	files, err := scan.Candidates(r.Opts.Dir, r.Opts.Pattern, r.Opts.Recursive)
	if err != nil {
		return sum, err
	}

	plan := Plan{
		Dir:    r.Opts.Dir,
		Files:  len(files),
		Target: r.Target,
		Backup: r.Opts.Backup,
		DryRun: r.Opts.DryRun,
	}
	r.Hooks.OnPlan(plan)
	if len(files) == 0 {
		return sum, nil
	}

	if r.Opts.Confirm && !r.Opts.DryRun {
		if !r.Hooks.Confirm(plan) {
			return sum, ErrDeclined
		}
	}

	for _, path := range files {
		select {
		case <-ctx.Done():
			log.Warn("interrupted after %d of %d files", sum.Scanned, len(files))
			r.Hooks.OnSummary(sum)
			return sum, ctx.Err()
		default:
		}
		res := r.processFile(path)
		sum.add(res)
		r.Hooks.OnFileResult(res)
	}

	r.Hooks.OnSummary(sum)
	return sum, nil
}

// processFile runs the classify/rewrite/serialize pipeline for one file.
// Every failure, a panic included, stays inside this boundary.
func (r *Runner) processFile(path string) (res FileResult) {
	res = FileResult{Path: path}
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic while processing %s: %v", path, rec)
			res.Status = StatusErrored
			res.Reason = ReasonPanic
			res.Err = fmt.Errorf("panic: %v", rec)
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		res.Status, res.Reason, res.Err = StatusErrored, ReasonReadFailed, err
		return res
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		res.Status, res.Reason, res.Err = StatusErrored, ReasonReadFailed, err
		return res
	}

	item, err := inventory.Load(raw)
	if err != nil {
		res.Status, res.Err = StatusSkipped, err
		if errors.Is(err, inventory.ErrNotInventoryItem) {
			res.Reason = ReasonNotInventoryItem
		} else {
			res.Reason = ReasonNotXML
		}
		return res
	}
	log.Debug("%s decoded as %s", path, item.Encoding)

	report, err := inventory.Rewrite(item, r.Target)
	if err != nil {
		// malformed Flags; the staged fields still apply
		log.Warn("%s: %v", path, err)
	}
	res.Report = report
	if len(report) == 0 {
		res.Status, res.Reason = StatusSkipped, ReasonNoChanges
		return res
	}

	if r.Opts.DryRun {
		res.Status = StatusModified
		return res
	}

	if r.Opts.Backup {
		if err := os.WriteFile(path+backupSuffix, raw, info.Mode().Perm()); err != nil {
			res.Status, res.Reason = StatusErrored, ReasonBackupFailed
			res.Err = fmt.Errorf("failed to back up %s: %w", path, err)
			return res
		}
	}

	out, err := inventory.Serialize(item, report)
	if err != nil {
		res.Status, res.Reason, res.Err = StatusErrored, ReasonWriteFailed, err
		return res
	}
	if err := writeFileAtomic(path, out, info.Mode().Perm()); err != nil {
		res.Status, res.Reason, res.Err = StatusErrored, ReasonWriteFailed, err
		return res
	}

	res.Status = StatusModified
	return res
}

// writeFileAtomic replaces path through a temp file and rename, so a failed
// write leaves the original bytes in place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".iarperms-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set mode on temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	tmpName = ""
	return nil
}
