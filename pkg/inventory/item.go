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

// Package inventory parses, rewrites and re-serializes OpenSimulator
// inventory item records, the inventory/*.xml files inside an expanded IAR.
package inventory

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// RootTag is the document root element of an inventory item record.
const RootTag = "InventoryItem"

// Child element tags are a fixed, case-sensitive contract with the
// simulator's serializer.
const (
	TagBasePermissions     = "BasePermissions"
	TagCurrentPermissions  = "CurrentPermissions"
	TagEveryonePermissions = "EveryOnePermissions" // capital O, as the simulator writes it
	TagNextPermissions     = "NextPermissions"
	TagSaleType            = "SaleType"
	TagSalePrice           = "SalePrice"
	TagGroupID             = "GroupID"
	TagGroupOwned          = "GroupOwned"
	TagCreatorUUID         = "CreatorUUID"
	TagFlags               = "Flags"
)

var (
	// ErrNotXML reports bytes no fallback encoding parsed as XML.
	ErrNotXML = errors.New("not well-formed XML under any known encoding")

	// ErrNotInventoryItem reports well-formed XML that is not an item record.
	ErrNotInventoryItem = errors.New("root element is not " + RootTag)
)

// Item is one inventory item record parsed into memory. Load builds it, the
// rewrite pass reads it, and Serialize renders a changed copy; the parsed
// tree itself is never mutated after Load.
type Item struct {
	doc  *etree.Document
	root *etree.Element

	// Declaration is the original "<?xml ...?>" line exactly as read,
	// including its line terminator. Empty when the file had none.
	Declaration string

	// Encoding names the fallback decoding that produced the parse.
	Encoding string
}

// Load classifies raw file bytes. It decodes with the fallback chain, sets
// aside a leading declaration, and accepts the document only when the root
// element is exactly RootTag. The first decoding that parses decides.
func Load(raw []byte) (*Item, error) {
	for _, d := range fallbackDecodings {
		text, ok := decodeAttempt(d, raw)
		if !ok {
			continue
		}
		decl, body := splitDeclaration(text)
		doc := etree.NewDocument()
		if err := doc.ReadFromString(body); err != nil {
			continue
		}
		root := doc.Root()
		if root == nil {
			continue
		}
		if root.Tag != RootTag {
			return nil, fmt.Errorf("%w (got <%s> via %s)", ErrNotInventoryItem, root.Tag, d.name)
		}
		return &Item{doc: doc, root: root, Declaration: decl, Encoding: d.name}, nil
	}
	return nil, ErrNotXML
}

// Field returns the text of a direct child element and whether it exists.
func (it *Item) Field(tag string) (string, bool) {
	el := it.root.SelectElement(tag)
	if el == nil {
		return "", false
	}
	return el.Text(), true
}
