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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldChange records one staged overwrite.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// Report is the ordered list of changes staged for one item. Empty means the
// item already matches the target, a valid outcome rather than an error.
type Report []FieldChange

// ErrMalformedFlags reports a Flags element whose text is not an unsigned
// 32-bit decimal.
var ErrMalformedFlags = errors.New("malformed Flags value")

// Rewrite compares the item against the target and stages an overwrite for
// every recognized field whose current text differs from the canonical
// rendering of the target value. Fields absent from the record are never
// invented, and the parsed tree is left untouched; Serialize applies the
// report to a copy.
//
// A non-nil error reports a malformed Flags value. The returned report is
// still complete for every other field.
func Rewrite(it *Item, t Target) (Report, error) {
	var rep Report
	stage := func(field, want string) {
		el := it.root.SelectElement(field)
		if el == nil {
			return
		}
		if old := el.Text(); old != want {
			rep = append(rep, FieldChange{Field: field, Old: old, New: want})
		}
	}

	stage(TagBasePermissions, formatUint(t.Base))
	stage(TagCurrentPermissions, formatUint(t.Current))
	stage(TagEveryonePermissions, formatUint(t.Everyone))
	stage(TagNextPermissions, formatUint(t.Next))
	stage(TagSaleType, strconv.Itoa(t.SaleType))
	stage(TagSalePrice, strconv.Itoa(t.SalePrice))
	stage(TagGroupID, t.GroupID.String())
	stage(TagGroupOwned, formatBool(t.GroupOwned))
	if t.Creator != "" {
		stage(TagCreatorUUID, t.Creator)
	}

	el := it.root.SelectElement(TagFlags)
	if el == nil {
		return rep, nil
	}
	old := el.Text()
	val, err := strconv.ParseUint(strings.TrimSpace(old), 10, 32)
	if err != nil {
		return rep, fmt.Errorf("%w: %q", ErrMalformedFlags, old)
	}
	if cleared := ClearFlags(uint32(val), t.ClearMask); cleared != uint32(val) {
		rep = append(rep, FieldChange{Field: TagFlags, Old: old, New: formatUint(cleared)})
	}
	return rep, nil
}
