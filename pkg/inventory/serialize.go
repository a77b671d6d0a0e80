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

import "fmt"

// Serialize renders the item with the staged report applied, always as UTF-8
// bytes. The original declaration line is reproduced verbatim even when it
// claims another encoding; downstream importers tolerate that mismatch but
// not structural edits, so everything the report does not touch round-trips
// unchanged, sibling order included. The item's own tree is not modified.
func Serialize(it *Item, rep Report) ([]byte, error) {
	doc := it.doc.Copy()
	root := doc.Root()
	for _, c := range rep {
		el := root.SelectElement(c.Field)
		if el == nil {
			return nil, fmt.Errorf("staged field %s missing from record", c.Field)
		}
		el.SetText(c.New)
	}
	body, err := doc.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}
	return []byte(it.Declaration + body), nil
}
