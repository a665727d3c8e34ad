package memory

import (
	"errors"
	"testing"

	"github.com/MrEthical07/goGuard/storage"
)

func TestLoadMissingKey(t *testing.T) {
	b := New()

	_, err := b.Load("currentUser")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	b := New()

	if err := b.Store("token", []byte("abc")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := b.Load("token")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("expected %q, got %q", "abc", got)
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	b := New()

	if err := b.Store("token", []byte("abc")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, _ := b.Load("token")
	got[0] = 'x'

	again, _ := b.Load("token")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	b := New()

	if err := b.Store("token", []byte("abc")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := b.Delete("token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := b.Delete("token"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}

	_, err := b.Load("token")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
