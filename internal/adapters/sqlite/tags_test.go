package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"testing"
)

func openTestStore(t testing.TB) *TagStore {
	t.Helper()

	store := NewTagStore()
	if err := store.Open(filepath.Join(t.TempDir(), "tags.db")); err != nil {
		t.Fatalf("failed to open tag store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close tag store: %v", err)
		}
	})
	return store
}

func TestTagStore_AddAndRead(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	key := "career_VAB_Kerbal X"
	for _, tag := range []string{"lifter", "crewed", "lifter"} {
		if err := store.AddTag(ctx, key, tag); err != nil {
			t.Fatalf("AddTag(%q) failed: %v", tag, err)
		}
	}

	tags, err := store.Tags(ctx, key)
	if err != nil {
		t.Fatalf("Tags failed: %v", err)
	}

	want := []string{"crewed", "lifter"}
	if !slices.Equal(tags, want) {
		t.Errorf("Tags = %v, want %v", tags, want)
	}
}

func TestTagStore_RemoveTag(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	key := "career_SPH_Aeris"
	store.AddTag(ctx, key, "plane")
	store.AddTag(ctx, key, "science")

	if err := store.RemoveTag(ctx, key, "plane"); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	// Removing a missing tag is not an error
	if err := store.RemoveTag(ctx, key, "plane"); err != nil {
		t.Fatalf("RemoveTag of missing tag failed: %v", err)
	}

	tags, _ := store.Tags(ctx, key)
	if !slices.Equal(tags, []string{"science"}) {
		t.Errorf("Tags = %v, want [science]", tags)
	}
}

func TestTagStore_AllTagsAndKeys(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.AddTag(ctx, "career_VAB_A", "lifter")
	store.AddTag(ctx, "career_VAB_B", "probe")
	store.AddTag(ctx, "sandbox_VAB_A", "lifter")

	all, err := store.AllTags(ctx)
	if err != nil {
		t.Fatalf("AllTags failed: %v", err)
	}
	if !slices.Equal(all, []string{"lifter", "probe"}) {
		t.Errorf("AllTags = %v", all)
	}

	keys, err := store.Keys(ctx, "career_")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if !slices.Equal(keys, []string{"career_VAB_A", "career_VAB_B"}) {
		t.Errorf("Keys = %v", keys)
	}
}

func TestTagStore_TxRollback(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.AddTag(ctx, "career_VAB_A", "keep")

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx failed: %v", err)
	}
	tx.AddTag("career_VAB_A", "discard")
	tx.DeleteKey("career_VAB_A")
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	tags, _ := store.Tags(ctx, "career_VAB_A")
	if !slices.Equal(tags, []string{"keep"}) {
		t.Errorf("Tags after rollback = %v, want [keep]", tags)
	}
}

func TestTagStore_TxCommit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx failed: %v", err)
	}
	tx.AddTag("career_VAB_A", "one")
	tx.AddTag("career_VAB_A", "two")
	tx.RemoveTag("career_VAB_A", "one")
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	tags, _ := store.Tags(ctx, "career_VAB_A")
	if !slices.Equal(tags, []string{"two"}) {
		t.Errorf("Tags after commit = %v, want [two]", tags)
	}
}

// BenchmarkTags benchmarks tag lookups against a populated store
func BenchmarkTags(b *testing.B) {
	store := openTestStore(b)
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	if err != nil {
		b.Fatalf("BeginTx failed: %v", err)
	}
	for i := range 2000 {
		tx.AddTag(fmt.Sprintf("career_VAB_craft%04d", i), fmt.Sprintf("tag%d", i%20))
	}
	if err := tx.Commit(); err != nil {
		b.Fatalf("Commit failed: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := store.Tags(ctx, "career_VAB_craft1000"); err != nil {
			b.Fatalf("Tags failed: %v", err)
		}
	}
}
