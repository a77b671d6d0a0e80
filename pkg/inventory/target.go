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

package inventory

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Target holds the desired value for every rewritable field plus the flags
// clear mask. Build one from a preset and adjust individual fields as needed.
type Target struct {
	Base     uint32
	Current  uint32
	Everyone uint32
	Next     uint32

	SaleType  int `validate:"gte=0,lte=2"`
	SalePrice int `validate:"gte=0"`

	GroupID    uuid.UUID
	GroupOwned bool

	// Creator, when non-empty, rewrites CreatorUUID to this value.
	Creator string

	ClearMask uint32
}

func (t *Target) Validate() error {
	validate := validator.New()
	return validate.Struct(t)
}

// StandardTarget is the full-permission preset: move, copy, modify and
// transfer for the owner, copy for everyone, no sale, no group.
func StandardTarget() Target {
	return Target{
		Base:      PermAllFolded,
		Current:   PermAllFolded,
		Everyone:  PermCopy,
		Next:      PermAll,
		GroupID:   uuid.Nil,
		ClearMask: DefaultClearMask,
	}
}

// MaximumTarget raises every permission field to the maximum value consumers
// accept; sale and group targets match the standard preset.
func MaximumTarget() Target {
	t := StandardTarget()
	t.Base = PermMaximum
	t.Current = PermMaximum
	t.Next = PermMaximum
	return t
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// formatBool renders booleans the way the simulator serializes them.
func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
