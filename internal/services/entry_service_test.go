package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clipvault/clipvault/internal/clip"
	"github.com/clipvault/clipvault/internal/database"
)

func setupServiceDB(t *testing.T) *database.Context {
	t.Helper()
	ctx, err := database.CreateDatabase(":memory:")
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}

	t.Cleanup(func() {
		if err := database.CloseDatabase(ctx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})

	return ctx
}

func textRecord(content string, createdAt time.Time) database.EntryRecord {
	return database.EntryRecord{
		ID:        uuid.NewString(),
		Kind:      clip.KindText,
		Content:   content,
		Hash:      clip.FingerprintText(content),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestEntryServiceInsertWithTags(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewEntryService(dbCtx)

	rec := textRecord("tagged content", time.Now())
	if err := svc.Insert(ctx, rec, []string{"work", "snippets"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Content != "tagged content" {
		t.Fatalf("unexpected content: %q", got.Content)
	}

	tags, err := svc.TagsFor(ctx, rec.ID)
	if err != nil {
		t.Fatalf("TagsFor failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", tags)
	}
}

func TestEntryServiceResolvePrefix(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewEntryService(dbCtx)

	rec := textRecord("findme", time.Now())
	rec.ID = "deadbeef-0000-0000-0000-000000000000"
	if err := svc.Insert(ctx, rec, nil); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := svc.Resolve(ctx, "deadbeef")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != rec.ID {
		t.Fatalf("unexpected resolution: %s", got.ID)
	}

	if _, err := svc.Resolve(ctx, "cafecafe"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEntryServiceDuplicateLookup(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewEntryService(dbCtx)

	rec := textRecord("duplicate me", time.Now())
	if err := svc.Insert(ctx, rec, nil); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	dup, err := svc.FindDuplicate(ctx, clip.KindText, rec.Hash)
	if err != nil {
		t.Fatalf("FindDuplicate failed: %v", err)
	}
	if dup == nil || dup.ID != rec.ID {
		t.Fatalf("expected duplicate, got %#v", dup)
	}

	// Same payload under a different kind is not a duplicate.
	other, err := svc.FindDuplicate(ctx, clip.KindURL, rec.Hash)
	if err != nil {
		t.Fatalf("FindDuplicate failed: %v", err)
	}
	if other != nil {
		t.Fatalf("kind must participate in dedup, got %#v", other)
	}
}

func TestEntryServiceStatusFlags(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewEntryService(dbCtx)

	rec := textRecord("flags", time.Now())
	if err := svc.Insert(ctx, rec, nil); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	ok, err := svc.SetPinned(ctx, rec.ID, true)
	if err != nil || !ok {
		t.Fatalf("SetPinned failed: ok=%v err=%v", ok, err)
	}

	label := "short name"
	ok, err = svc.SetLabel(ctx, rec.ID, &label)
	if err != nil || !ok {
		t.Fatalf("SetLabel failed: ok=%v err=%v", ok, err)
	}

	ok, err = svc.SetTrashed(ctx, rec.ID, true)
	if err != nil || !ok {
		t.Fatalf("SetTrashed failed: ok=%v err=%v", ok, err)
	}

	got, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Pinned || !got.Trashed {
		t.Fatalf("flags not persisted: %#v", got)
	}
	if got.DisplayLabel == nil || *got.DisplayLabel != label {
		t.Fatalf("label not persisted: %#v", got.DisplayLabel)
	}
	if got.Content != "flags" {
		t.Fatalf("labelling must not mutate content, got %q", got.Content)
	}

	ok, err = svc.SetLabel(ctx, rec.ID, nil)
	if err != nil || !ok {
		t.Fatalf("clear label failed: ok=%v err=%v", ok, err)
	}
	got, err = svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.DisplayLabel != nil {
		t.Fatalf("label should be cleared, got %#v", got.DisplayLabel)
	}

	ok, err = svc.SetPinned(ctx, "missing-id", true)
	if err != nil {
		t.Fatalf("SetPinned error: %v", err)
	}
	if ok {
		t.Fatal("SetPinned on missing id must report false")
	}
}

func TestEntryServicePruneHelpers(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewEntryService(dbCtx)

	now := time.Now()
	old := textRecord("old", now.Add(-48*time.Hour))
	pinnedOld := textRecord("pinned old", now.Add(-72*time.Hour))
	pinnedOld.Pinned = true
	fresh := textRecord("fresh", now)

	for _, rec := range []database.EntryRecord{old, pinnedOld, fresh} {
		if err := svc.Insert(ctx, rec, nil); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	removed, err := svc.PruneOlderThan(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PruneOlderThan failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}

	if _, err := svc.Get(ctx, pinnedOld.ID); err != nil {
		t.Fatalf("pinned entry must survive age pruning: %v", err)
	}

	ids, err := svc.OldestUnpinnedIDs(ctx, 10)
	if err != nil {
		t.Fatalf("OldestUnpinnedIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != fresh.ID {
		t.Fatalf("unexpected unpinned ids: %v", ids)
	}

	count, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 entries, got %d", count)
	}
}
