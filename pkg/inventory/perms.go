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

// Permission mask bits as the simulator defines them.
const (
	PermTransfer uint32 = 1 << 13
	PermModify   uint32 = 1 << 14
	PermCopy     uint32 = 1 << 15
	PermMove     uint32 = 1 << 19

	// permFolded keeps the low folded-permission bits that grids carry on
	// full-permission items.
	permFolded uint32 = 0x7

	// PermAll grants move, copy, modify and transfer (581632).
	PermAll uint32 = PermMove | PermCopy | PermModify | PermTransfer

	// PermAllFolded is PermAll plus the folded bits (581639).
	PermAllFolded uint32 = PermAll | permFolded

	// PermMaximum sets every bit a signed 32-bit consumer accepts (2147483647).
	PermMaximum uint32 = 0x7FFFFFFF
)

// Flags bits observed on inventory item records.
const (
	// FlagNoCopy marks an item that may not be copied.
	FlagNoCopy uint32 = 1 << 8

	// FlagNoModify marks an item that may not be modified. Not part of the
	// default clear mask; add it explicitly when wanted.
	FlagNoModify uint32 = 1 << 12

	// FlagHasInventory marks an object carrying container inventory. It is
	// state, not a restriction, and survives every clear mask.
	FlagHasInventory uint32 = 1 << 20

	// FlagSaleBits covers bits 19-24, the for-sale and no-transfer
	// restriction range.
	FlagSaleBits uint32 = 0x1F80000

	// DefaultClearMask strips no-copy and the sale restriction range.
	DefaultClearMask uint32 = FlagNoCopy | FlagSaleBits
)

// ClearFlags removes the masked restriction bits from a flags value. The
// container-inventory bit survives any mask, bits outside the mask are
// untouched, and no bit is ever set, which makes the operation idempotent.
func ClearFlags(flags, mask uint32) uint32 {
	return flags &^ (mask &^ FlagHasInventory)
}
