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

import "github.com/Gene1968/OS-IAR-perms/pkg/inventory"

// Status classifies the outcome of one candidate file.
type Status string

const (
	StatusModified Status = "modified"
	StatusSkipped  Status = "skipped"
	StatusErrored  Status = "errored"
)

// Reason explains a skip or error in reports and logs.
type Reason string

const (
	ReasonNotXML           Reason = "not well-formed XML"
	ReasonNotInventoryItem Reason = "not an inventory item"
	ReasonNoChanges        Reason = "no changes needed"
	ReasonReadFailed       Reason = "read failed"
	ReasonBackupFailed     Reason = "backup failed"
	ReasonWriteFailed      Reason = "write failed"
	ReasonPanic            Reason = "internal error"
)

// FileResult is the outcome of processing one candidate file. Report holds
// the staged changes for modified files, including dry runs.
type FileResult struct {
	Path   string
	Status Status
	Reason Reason
	Report inventory.Report
	Err    error
}

// Summary accumulates run totals. It is threaded through the loop as a
// value, never held in package state.
type Summary struct {
	Scanned  int
	Modified int
	Skipped  int
	Errored  int
}

func (s *Summary) add(res FileResult) {
	s.Scanned++
	switch res.Status {
	case StatusModified:
		s.Modified++
	case StatusSkipped:
		s.Skipped++
	case StatusErrored:
		s.Errored++
	}
}
