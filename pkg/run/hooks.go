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

package run

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Gene1968/OS-IAR-perms/pkg/inventory"
)

// Plan describes a run before it starts, for display and confirmation.
type Plan struct {
	Dir    string
	Files  int
	Target inventory.Target
	Backup bool
	DryRun bool
}

// Hooks groups run callbacks. Unset hooks get console defaults.
type Hooks struct {
	OnPlan       func(plan Plan)
	Confirm      func(plan Plan) bool
	OnFileResult func(res FileResult)
	OnSummary    func(sum Summary)
}

// SetDefaultHooks installs console fallbacks for unset hooks.
func (r *Runner) SetDefaultHooks() {
	if r.Hooks.OnPlan == nil {
		r.Hooks.OnPlan = r.printPlan
	}
	if r.Hooks.Confirm == nil {
		r.Hooks.Confirm = confirmPrompt
	}
	if r.Hooks.OnFileResult == nil {
		r.Hooks.OnFileResult = r.printFileResult
	}
	if r.Hooks.OnSummary == nil {
		r.Hooks.OnSummary = r.printSummary
	}
}

func (r *Runner) printPlan(plan Plan) {
	if plan.Files == 0 {
		fmt.Printf("No files matching %s found in %s\n", r.Opts.Pattern, plan.Dir)
		return
	}
	fmt.Printf("Target directory: %s\n", plan.Dir)
	fmt.Printf("Files found: %d\n", plan.Files)
	fmt.Printf("Permissions: base=%d current=%d everyone=%d next=%d\n",
		plan.Target.Base, plan.Target.Current, plan.Target.Everyone, plan.Target.Next)
	fmt.Printf("Sale reset: type=%d price=%d group=%s\n",
		plan.Target.SaleType, plan.Target.SalePrice, plan.Target.GroupID)
	if plan.Target.Creator != "" {
		fmt.Printf("Creator rewrite: %s\n", plan.Target.Creator)
	}
	if plan.Backup {
		fmt.Println("Backups: enabled")
	}
	if plan.DryRun {
		fmt.Println("Dry run: no files will be written")
	}
}

func confirmPrompt(plan Plan) bool {
	fmt.Printf("Rewrite permissions in %d files? [y/N] ", plan.Files)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (r *Runner) printFileResult(res FileResult) {
	switch res.Status {
	case StatusModified:
		verb := "Modified"
		if r.Opts.DryRun {
			verb = "Would modify"
		}
		fmt.Printf("%s: %s\n", verb, res.Path)
		if r.Opts.Verbose {
			for _, c := range res.Report {
				fmt.Printf("  %s: %s -> %s\n", c.Field, c.Old, c.New)
			}
		}
	case StatusSkipped:
		if r.Opts.Verbose {
			fmt.Printf("Skipped (%s): %s\n", res.Reason, res.Path)
		}
	case StatusErrored:
		fmt.Printf("Error (%s): %s: %v\n", res.Reason, res.Path, res.Err)
	}
}

func (r *Runner) printSummary(sum Summary) {
	fmt.Println()
	fmt.Printf("Processed: %d\n", sum.Scanned)
	fmt.Printf("Modified:  %d\n", sum.Modified)
	fmt.Printf("Skipped:   %d\n", sum.Skipped)
	fmt.Printf("Errors:    %d\n", sum.Errored)
	if r.Opts.DryRun {
		fmt.Println("DRY RUN: no files were written")
	}
}
