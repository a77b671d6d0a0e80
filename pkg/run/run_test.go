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
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/Gene1968/OS-IAR-perms/pkg/inventory"
)

const itemXML = `<?xml version="1.0" encoding="utf-16"?>
<InventoryItem>
  <Name>Lamp</Name>
  <SaleType>2</SaleType>
  <SalePrice>10</SalePrice>
  <BasePermissions>0</BasePermissions>
  <Flags>1572864</Flags>
</InventoryItem>
`

const landmarkXML = `<?xml version="1.0"?>
<Landmark>
  <Name>Home</Name>
</Landmark>
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testOptions(dir string) Options {
	return Options{Dir: dir, Pattern: "*.xml", Recursive: true}
}

// silentHooks collects results without console output.
func silentHooks(results *[]FileResult) Hooks {
	return Hooks{
		OnPlan:       func(Plan) {},
		Confirm:      func(Plan) bool { return true },
		OnFileResult: func(res FileResult) { *results = append(*results, res) },
		OnSummary:    func(Summary) {},
	}
}

func TestRunRewritesEligibleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.xml", itemXML)
	b := writeFixture(t, dir, "inventory/b.xml", itemXML)
	landmark := writeFixture(t, dir, "landmark.xml", landmarkXML)
	writeFixture(t, dir, "junk.xml", "not xml at all")

	var results []FileResult
	r, err := New(testOptions(dir), inventory.StandardTarget(), silentHooks(&results))
	assert.NoError(t, err)

	sum, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, Summary{Scanned: 4, Modified: 2, Skipped: 2, Errored: 0}, sum)
	assert.Len(t, results, 4)

	for _, path := range []string{a, b} {
		out, err := os.ReadFile(path)
		assert.NoError(t, err)
		text := string(out)
		assert.True(t, strings.HasPrefix(text, "<?xml version=\"1.0\" encoding=\"utf-16\"?>\n"), "declaration lost in %s", path)
		assert.True(t, utf8.Valid(out))
		assert.Contains(t, text, "<SaleType>0</SaleType>")
		assert.Contains(t, text, "<SalePrice>0</SalePrice>")
		assert.Contains(t, text, "<BasePermissions>581639</BasePermissions>")
		assert.Contains(t, text, "<Flags>1048576</Flags>")
	}

	skipped, err := os.ReadFile(landmark)
	assert.NoError(t, err)
	assert.Equal(t, landmarkXML, string(skipped), "skipped files must keep their bytes")
}

// TestRunSecondPassStagesNothing covers whole-pipeline idempotence.
func TestRunSecondPassStagesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.xml", itemXML)

	var first []FileResult
	r, err := New(testOptions(dir), inventory.StandardTarget(), silentHooks(&first))
	assert.NoError(t, err)
	_, err = r.Run(context.Background())
	assert.NoError(t, err)

	var second []FileResult
	r2, err := New(testOptions(dir), inventory.StandardTarget(), silentHooks(&second))
	assert.NoError(t, err)

	sum, err := r2.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, Summary{Scanned: 1, Modified: 0, Skipped: 1, Errored: 0}, sum)
	assert.Equal(t, ReasonNoChanges, second[0].Reason)
}

func TestRunDryRunLeavesBytesUntouched(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "a.xml", itemXML)

	opts := testOptions(dir)
	opts.DryRun = true

	var results []FileResult
	r, err := New(opts, inventory.StandardTarget(), silentHooks(&results))
	assert.NoError(t, err)

	sum, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, sum.Modified)

	out, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, itemXML, string(out), "dry run must not write")

	// the report still says what would change
	assert.NotEmpty(t, results[0].Report)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1, "dry run must not leave extra files")
}

func TestRunBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "a.xml", itemXML)

	opts := testOptions(dir)
	opts.Backup = true

	var results []FileResult
	r, err := New(opts, inventory.StandardTarget(), silentHooks(&results))
	assert.NoError(t, err)

	_, err = r.Run(context.Background())
	assert.NoError(t, err)

	backup, err := os.ReadFile(path + ".backup")
	assert.NoError(t, err)
	assert.Equal(t, itemXML, string(backup), "backup must hold the original bytes")

	out, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.NotEqual(t, itemXML, string(out))
}

func TestRunBackupFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "a.xml", itemXML)
	// a directory squatting on the backup path forces the backup write to fail
	assert.NoError(t, os.Mkdir(path+".backup", 0o755))

	opts := testOptions(dir)
	opts.Backup = true

	var results []FileResult
	r, err := New(opts, inventory.StandardTarget(), silentHooks(&results))
	assert.NoError(t, err)

	sum, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, sum.Errored)
	assert.Equal(t, ReasonBackupFailed, results[0].Reason)

	out, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, itemXML, string(out), "original must stay intact after a backup failure")
}

func TestRunConfirmationDeclined(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "a.xml", itemXML)

	opts := testOptions(dir)
	opts.Confirm = true

	hooks := Hooks{
		OnPlan:       func(Plan) {},
		Confirm:      func(Plan) bool { return false },
		OnFileResult: func(FileResult) {},
		OnSummary:    func(Summary) {},
	}
	r, err := New(opts, inventory.StandardTarget(), hooks)
	assert.NoError(t, err)

	sum, err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Equal(t, Summary{}, sum)

	out, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, itemXML, string(out))
}

func TestRunDryRunSkipsConfirmation(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.xml", itemXML)

	opts := testOptions(dir)
	opts.Confirm = true
	opts.DryRun = true

	hooks := Hooks{
		OnPlan:       func(Plan) {},
		Confirm:      func(Plan) bool { t.Fatal("confirmation must not run for dry runs"); return false },
		OnFileResult: func(FileResult) {},
		OnSummary:    func(Summary) {},
	}
	r, err := New(opts, inventory.StandardTarget(), hooks)
	assert.NoError(t, err)

	_, err = r.Run(context.Background())
	assert.NoError(t, err)
}

func TestRunMissingDirectory(t *testing.T) {
	opts := testOptions(filepath.Join(t.TempDir(), "gone"))
	var results []FileResult
	r, err := New(opts, inventory.StandardTarget(), silentHooks(&results))
	assert.NoError(t, err)

	_, err = r.Run(context.Background())
	assert.Error(t, err)
}

func TestRunCancelledBeforeNextFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.xml", itemXML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var results []FileResult
	r, err := New(testOptions(dir), inventory.StandardTarget(), silentHooks(&results))
	assert.NoError(t, err)

	sum, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sum.Scanned)
}

func TestRunInvalidOptions(t *testing.T) {
	_, err := New(Options{}, inventory.StandardTarget(), Hooks{})
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.xml")
	if err := os.WriteFile(path, []byte("old"), 0o640); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := writeFileAtomic(path, []byte("new"), 0o640); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil || string(out) != "new" {
		t.Fatalf("content mismatch: %q err=%v", out, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %v", entries)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("mode mismatch: %v", info.Mode().Perm())
	}
}

func TestSummaryAdd(t *testing.T) {
	var sum Summary
	sum.add(FileResult{Status: StatusModified})
	sum.add(FileResult{Status: StatusSkipped})
	sum.add(FileResult{Status: StatusSkipped})
	sum.add(FileResult{Status: StatusErrored})

	want := Summary{Scanned: 4, Modified: 1, Skipped: 2, Errored: 1}
	if sum != want {
		t.Fatalf("summary mismatch: %+v", sum)
	}
}
