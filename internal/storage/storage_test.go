package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	_ Store = (*LocalStore)(nil)
	_ Store = (*MinioStore)(nil)
)

func TestLocalStorePutRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	ctx := context.Background()
	obj, err := store.Put(ctx, "cvs/resume.pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if obj.Path != "/uploads/cvs/resume.pdf" || obj.Size != 8 || obj.Filename != "resume.pdf" {
		t.Errorf("unexpected object %+v", obj)
	}

	onDisk := filepath.Join(root, "cvs", "resume.pdf")
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	if err := store.Remove(ctx, "cvs/resume.pdf"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Errorf("expected file removed, stat err = %v", err)
	}
	if err := store.Remove(ctx, "cvs/resume.pdf"); err != nil {
		t.Errorf("removing a missing file should be a no-op, got %v", err)
	}
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, _ := NewLocalStore(t.TempDir())
	if _, err := store.Put(context.Background(), "../escape.txt", strings.NewReader("x"), 1, "text/plain"); err == nil {
		t.Fatal("expected traversal key to be rejected")
	}
}

func TestMinioURL(t *testing.T) {
	s := &MinioStore{bucket: "uploads", endpoint: "files.local:9000"}
	if got := s.URL("cvs/a.pdf"); got != "http://files.local:9000/uploads/cvs/a.pdf" {
		t.Errorf("unexpected url %s", got)
	}
	s.useSSL = true
	if got := s.URL("cvs/a.pdf"); !strings.HasPrefix(got, "https://") {
		t.Errorf("expected https url, got %s", got)
	}
}
