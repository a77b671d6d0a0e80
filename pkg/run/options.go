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

import "github.com/go-playground/validator/v10"

// Options configures one run over a directory tree.
type Options struct {
	// Dir is the directory holding candidate record files.
	Dir string `validate:"required"`

	// Pattern selects candidate filenames within Dir.
	Pattern string `validate:"required"`

	// Recursive descends into subdirectories.
	Recursive bool

	// Backup writes a .backup sibling before each overwrite.
	Backup bool

	// DryRun stages and reports changes without touching any file.
	DryRun bool

	// Confirm gates destructive runs behind the confirmation hook.
	Confirm bool

	// Verbose prints per-file skip reasons and per-field change lines.
	Verbose bool
}

func (o *Options) Validate() error {
	validate := validator.New()
	return validate.Struct(o)
}
