package navigator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/michaelscutari/dutop/internal/entry"
	"github.com/michaelscutari/dutop/internal/rollup"
	"github.com/michaelscutari/dutop/internal/scan"
)

// fakeScanner serves canned inventories and counts scans per path.
type fakeScanner struct {
	trees map[string][]entry.Entry
	scans map[string]int
}

func newFakeScanner() *fakeScanner {
	return &fakeScanner{
		trees: make(map[string][]entry.Entry),
		scans: make(map[string]int),
	}
}

func (f *fakeScanner) Scan(path string) entry.Inventory {
	f.scans[path]++
	return rollup.Build(f.trees[path])
}

func (f *fakeScanner) add(parent, name string, size uint64, isDir bool) {
	kind := entry.KindFile
	if isDir {
		kind = entry.KindDir
	}
	f.trees[parent] = append(f.trees[parent], entry.Entry{
		Path:  filepath.Join(parent, name),
		Name:  name,
		Size:  size,
		IsDir: isDir,
		Kind:  kind,
	})
}

func sampleTree() (*fakeScanner, string) {
	root := filepath.Join(string(filepath.Separator), "data")
	f := newFakeScanner()
	f.add(root, "big.log", 5_000_000, false)
	f.add(root, "small.txt", 120, false)
	f.add(root, "sub", 3_000_000, true)
	f.add(filepath.Join(root, "sub"), "f.bin", 3_000_000, false)
	return f, root
}

func TestNewLoadsAndPlacesCursor(t *testing.T) {
	f, root := sampleTree()
	n := New(f, root)

	s := n.State()
	if s.Path != root || s.Cursor != 0 || s.TotalSize != 8_000_120 || len(s.Entries) != 3 {
		t.Fatalf("unexpected state: %+v", s)
	}
	if f.scans[root] != 1 {
		t.Fatalf("expected one scan, got %d", f.scans[root])
	}
	sel, ok := s.Selected()
	if !ok || sel.Name != "big.log" {
		t.Fatalf("unexpected selection: %+v %v", sel, ok)
	}
}

func TestWraparoundClosure(t *testing.T) {
	f, root := sampleTree()
	n := New(f, root)
	n.MoveNext()
	start := n.Cursor()

	for i := 0; i < n.Inventory().Len(); i++ {
		n.MoveNext()
	}
	if n.Cursor() != start {
		t.Fatalf("MoveNext closure: cursor %d, want %d", n.Cursor(), start)
	}
	for i := 0; i < n.Inventory().Len(); i++ {
		n.MovePrevious()
	}
	if n.Cursor() != start {
		t.Fatalf("MovePrevious closure: cursor %d, want %d", n.Cursor(), start)
	}

	n.MoveFirst()
	n.MovePrevious()
	if n.Cursor() != 2 {
		t.Fatalf("MovePrevious from 0 should wrap to last, got %d", n.Cursor())
	}
	n.MoveNext()
	if n.Cursor() != 0 {
		t.Fatalf("MoveNext from last should wrap to 0, got %d", n.Cursor())
	}
	n.MoveLast()
	if n.Cursor() != 2 {
		t.Fatalf("MoveLast = %d", n.Cursor())
	}
}

func TestSingleEntryWrapsToItself(t *testing.T) {
	f := newFakeScanner()
	f.add("/one", "only", 1, false)
	n := New(f, "/one")
	n.MoveNext()
	n.MovePrevious()
	if n.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", n.Cursor())
	}
}

func TestDescendAndAscend(t *testing.T) {
	f, root := sampleTree()
	n := New(f, root)
	originalTotal := n.State().TotalSize

	// Descending into a file is a no-op.
	n.Descend()
	if n.Path() != root || f.scans[root] != 1 {
		t.Fatalf("descend into file changed state: path=%s scans=%d", n.Path(), f.scans[root])
	}

	n.MoveNext() // sub
	n.Descend()
	sub := filepath.Join(root, "sub")
	if n.Path() != sub || n.Cursor() != 0 {
		t.Fatalf("after descend: path=%s cursor=%d", n.Path(), n.Cursor())
	}

	// Cursor is now on f.bin, a file.
	n.Descend()
	if n.Path() != sub || f.scans[sub] != 1 {
		t.Fatalf("descend into f.bin should be a no-op")
	}

	n.Ascend()
	s := n.State()
	if s.Path != root || s.TotalSize != originalTotal || s.Cursor != 0 {
		t.Fatalf("after ascend: %+v", s)
	}
}

func TestAscendAtRootIsNoop(t *testing.T) {
	root := string(filepath.Separator)
	f := newFakeScanner()
	f.add(root, "etc", 10, true)
	n := New(f, root)

	n.Ascend()
	if n.Path() != root || f.scans[root] != 1 {
		t.Fatalf("ascend at root: path=%s scans=%d", n.Path(), f.scans[root])
	}
}

func TestAscendFromRelativePaths(t *testing.T) {
	base := t.TempDir()
	deep := filepath.Join(base, "a", "b")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(deep)

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	cases := map[string]string{
		".":  filepath.Dir(cwd),
		"..": filepath.Dir(filepath.Dir(cwd)),
	}
	for start, want := range cases {
		f := newFakeScanner()
		n := New(f, start)

		n.Ascend()
		if n.Path() != want {
			t.Fatalf("ascend from %q moved to %q, want %q", start, n.Path(), want)
		}
		if f.scans[want] != 1 {
			t.Fatalf("ascend from %q did not scan %q", start, want)
		}
	}
}

func TestEmptyInventoryTransitions(t *testing.T) {
	f := newFakeScanner()
	n := New(f, "/nowhere/empty")

	s := n.State()
	if s.Cursor != NoCursor || len(s.Entries) != 0 || s.TotalSize != 0 {
		t.Fatalf("unexpected empty state: %+v", s)
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("expected no selection")
	}

	n.MoveNext()
	n.MovePrevious()
	n.MoveFirst()
	n.MoveLast()
	n.Descend()
	if n.Cursor() != NoCursor || n.Path() != "/nowhere/empty" {
		t.Fatalf("transitions on empty inventory changed state: %+v", n.State())
	}
	n.Reload()
	if f.scans["/nowhere/empty"] != 2 {
		t.Fatalf("reload should rescan, got %d scans", f.scans["/nowhere/empty"])
	}
	n.Ascend()
	if n.Path() != "/nowhere" {
		t.Fatalf("ascend from empty dir: path=%s", n.Path())
	}
}

func TestReloadResetsCursor(t *testing.T) {
	f, root := sampleTree()
	n := New(f, root)
	n.MoveLast()
	n.Reload()
	if n.Cursor() != 0 || f.scans[root] != 2 {
		t.Fatalf("reload: cursor=%d scans=%d", n.Cursor(), f.scans[root])
	}
}

func TestQuitIgnoresLaterTransitions(t *testing.T) {
	f, root := sampleTree()
	n := New(f, root)
	n.Quit()

	n.MoveNext()
	n.Reload()
	n.Ascend()
	s := n.State()
	if !s.Terminated || s.Cursor != 0 || s.Path != root || f.scans[root] != 1 {
		t.Fatalf("transitions after quit changed state: %+v scans=%d", s, f.scans[root])
	}
}

func TestApplyCommands(t *testing.T) {
	f, root := sampleTree()
	n := New(f, root)

	steps := []struct {
		name   string
		path   string
		cursor int
	}{
		{"next", root, 1},
		{"enter", filepath.Join(root, "sub"), 0},
		{"up", root, 0},
		{"previous", root, 2},
		{"first", root, 0},
		{"last", root, 2},
		{"refresh", root, 0},
	}
	for _, step := range steps {
		cmd, err := ParseCommand(step.name)
		if err != nil {
			t.Fatalf("parse %s: %v", step.name, err)
		}
		s := n.Apply(cmd)
		if s.Path != step.path || s.Cursor != step.cursor {
			t.Fatalf("after %s: path=%s cursor=%d, want %s/%d", step.name, s.Path, s.Cursor, step.path, step.cursor)
		}
	}

	if s := n.Apply(CmdQuit); !s.Terminated {
		t.Fatalf("quit did not terminate")
	}
	if _, err := ParseCommand("jump"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if !CmdEnter.Loads() || CmdNext.Loads() {
		t.Fatalf("unexpected Loads classification")
	}
}

func TestNavigatorWithRealScanner(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "c"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "c", "f"), make([]byte, 300), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "tiny"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	n := New(scan.NewScanner(nil), root)
	before := n.State().TotalSize
	if before != 301 {
		t.Fatalf("total = %d, want 301", before)
	}

	n.Descend() // c is largest
	if n.Path() != filepath.Join(root, "c") {
		t.Fatalf("expected to be in c, got %s", n.Path())
	}
	n.Descend() // f is a file
	if n.Path() != filepath.Join(root, "c") {
		t.Fatalf("descend into file moved to %s", n.Path())
	}
	n.Ascend()
	if n.Path() != root || n.State().TotalSize != before {
		t.Fatalf("ascend: path=%s total=%d", n.Path(), n.State().TotalSize)
	}

	if err := os.RemoveAll(root); err != nil {
		t.Fatalf("remove: %v", err)
	}
	n.Reload()
	if s := n.State(); s.Cursor != NoCursor || s.TotalSize != 0 {
		t.Fatalf("reload of vanished dir: %+v", s)
	}
}
