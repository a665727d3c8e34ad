package bboltstore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/MrEthical07/goGuard/storage"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	path := filepath.Join(t.TempDir(), "goguard-test.db")
	b, err := NewFromFile(path, nil)
	if err != nil {
		t.Fatalf("could not open db: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestStoreLoadDelete(t *testing.T) {
	b := newTestBackend(t)

	if err := b.Store("currentUser", []byte(`{"username":"admin"}`)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := b.Load("currentUser")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != `{"username":"admin"}` {
		t.Fatalf("unexpected value: %q", got)
	}

	if err := b.Delete("currentUser"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := b.Load("currentUser"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestLoadBeforeFirstStore(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.Load("token")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on fresh db, got %v", err)
	}
}

func TestDeleteOnFreshDB(t *testing.T) {
	b := newTestBackend(t)

	if err := b.Delete("token"); err != nil {
		t.Fatalf("Delete on fresh db failed: %v", err)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goguard-test.db")

	b, err := NewFromFile(path, nil)
	if err != nil {
		t.Fatalf("could not open db: %v", err)
	}
	if err := b.Store("token", []byte("tok-1")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewFromFile(path, nil)
	if err != nil {
		t.Fatalf("could not reopen db: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load("token")
	if err != nil {
		t.Fatalf("Load after reopen failed: %v", err)
	}
	if string(got) != "tok-1" {
		t.Fatalf("expected %q after reopen, got %q", "tok-1", got)
	}
}
