package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

func TestLocalStoreSaveFindOpen(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Save(ctx, "m1.wav", strings.NewReader("audio"), 5, "audio/wav"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	obj, err := store.FindByPrefix(ctx, "m1")
	if err != nil || obj == nil {
		t.Fatalf("FindByPrefix = %v, %v", obj, err)
	}
	if obj.Name != "m1.wav" || obj.Size != 5 {
		t.Errorf("object = %+v", obj)
	}

	rc, err := store.Open(ctx, obj.Name)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "audio" {
		t.Errorf("content = %q", data)
	}
}

func TestLocalStoreFindByPrefixOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := NewLocalStore(t.TempDir())
	for _, name := range []string{"m1.wav", "m1.mp3", "m2.wav"} {
		if err := store.Save(ctx, name, strings.NewReader("x"), 1, ""); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(filepath.Join(store.Dir(), ".m1-hidden"), []byte("x"), 0o644)

	obj, _ := store.FindByPrefix(ctx, "m1")
	if obj == nil || obj.Name != "m1.mp3" {
		t.Errorf("first match = %+v, want m1.mp3", obj)
	}

	missing, err := store.FindByPrefix(ctx, "m3")
	if missing != nil || err != nil {
		t.Errorf("missing prefix = %v, %v", missing, err)
	}
}

func TestLocalStoreOpenMissing(t *testing.T) {
	store, _ := NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "nope.wav")
	if !errors.Is(err, entities.ErrSourceNotFound) {
		t.Errorf("err = %v, want ErrSourceNotFound", err)
	}
}

func TestLocalStoreRejectsUnsafeNames(t *testing.T) {
	store, _ := NewLocalStore(t.TempDir())
	for _, name := range []string{"", "../x.wav", "a/b.wav", ".hidden"} {
		if err := store.Save(context.Background(), name, strings.NewReader("x"), 1, ""); err == nil {
			t.Errorf("Save(%q) succeeded", name)
		}
	}
}

func TestLocalStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Save(ctx, "m1.wav", strings.NewReader("audio"), 5, ""); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "m1.wav"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if obj, _ := store.FindByPrefix(ctx, "m1"); obj != nil {
		t.Errorf("object still present: %+v", obj)
	}
	if err := store.Delete(ctx, "m1.wav"); err != nil {
		t.Errorf("deleting a missing file: %v", err)
	}
	if err := store.Delete(ctx, "../m1.wav"); err == nil {
		t.Error("expected error for unsafe name")
	}
}
