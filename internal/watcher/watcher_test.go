package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSnapshotFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "user.ts"), []byte("export interface User {}"), 0644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not ts"), 0644)

	w := New([]string{dir}, []string{".ts"}, 100*time.Millisecond, nil)
	snap := w.snapshot()

	if len(snap) != 1 {
		t.Fatalf("expected 1 file in snapshot, got %d", len(snap))
	}
	if _, ok := snap[filepath.Join(dir, "user.ts")]; !ok {
		t.Fatal("expected user.ts in snapshot")
	}
}

func TestSnapshotWalksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "models")
	os.MkdirAll(sub, 0755)
	os.WriteFile(filepath.Join(dir, "root.ts"), []byte("a"), 0644)
	os.WriteFile(filepath.Join(sub, "nested.ts"), []byte("b"), 0644)
	os.WriteFile(filepath.Join(sub, "style.css"), []byte("c"), 0644)

	w := New([]string{dir}, []string{".ts"}, 100*time.Millisecond, nil)
	if snap := w.snapshot(); len(snap) != 2 {
		t.Fatalf("expected 2 files in snapshot, got %d", len(snap))
	}
}

func TestSnapshotMultipleExtensions(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.ts"), []byte("a"), 0644)
	os.WriteFile(filepath.Join(dir, "b.tsx"), []byte("b"), 0644)
	os.WriteFile(filepath.Join(dir, "c.js"), []byte("c"), 0644)

	w := New([]string{dir}, []string{".ts", ".tsx"}, 100*time.Millisecond, nil)
	if snap := w.snapshot(); len(snap) != 2 {
		t.Fatalf("expected 2 files in snapshot, got %d", len(snap))
	}
}

func TestDiffCreate(t *testing.T) {
	current := map[string]fileState{"/a.ts": {modTime: time.Now(), size: 10}}
	events := diff(nil, current)
	if len(events) != 1 || events[0].Op != OpCreate {
		t.Errorf("expected 1 create event, got %v", events)
	}
}

func TestDiffWrite(t *testing.T) {
	now := time.Now()
	old := map[string]fileState{"/a.ts": {modTime: now, size: 10}}
	current := map[string]fileState{"/a.ts": {modTime: now.Add(time.Second), size: 15}}
	events := diff(old, current)
	if len(events) != 1 || events[0].Op != OpWrite {
		t.Errorf("expected 1 write event, got %v", events)
	}
}

func TestDiffRemove(t *testing.T) {
	old := map[string]fileState{"/a.ts": {modTime: time.Now(), size: 10}}
	events := diff(old, nil)
	if len(events) != 1 || events[0].Op != OpRemove {
		t.Errorf("expected 1 remove event, got %v", events)
	}
}

func TestDiffNoChange(t *testing.T) {
	snap := map[string]fileState{"/a.ts": {modTime: time.Now(), size: 10}}
	if events := diff(snap, snap); len(events) != 0 {
		t.Errorf("expected no events, got %v", events)
	}
}

func TestDiffMixedEvents(t *testing.T) {
	now := time.Now()
	old := map[string]fileState{
		"/a.ts": {modTime: now, size: 10},
		"/b.ts": {modTime: now, size: 20},
	}
	current := map[string]fileState{
		"/a.ts": {modTime: now.Add(time.Second), size: 15},
		"/c.ts": {modTime: now, size: 30},
	}
	events := diff(old, current)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %v", len(events), events)
	}

	ops := make(map[Op]bool)
	for _, e := range events {
		ops[e.Op] = true
	}
	if !ops[OpWrite] || !ops[OpCreate] || !ops[OpRemove] {
		t.Errorf("expected write, create and remove, got %v", events)
	}
}
