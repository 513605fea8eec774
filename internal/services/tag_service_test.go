package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

func TestTagServiceAttachDetach(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	entries := NewEntryService(dbCtx)
	tags := NewTagService(dbCtx)

	rec := textRecord("taggable", time.Now())
	if err := entries.Insert(ctx, rec, nil); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := tags.Attach(ctx, rec.ID, "  work  "); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	// Attaching again is a no-op, not an error.
	if err := tags.Attach(ctx, rec.ID, "work"); err != nil {
		t.Fatalf("repeat Attach failed: %v", err)
	}

	got, err := entries.TagsFor(ctx, rec.ID)
	if err != nil {
		t.Fatalf("TagsFor failed: %v", err)
	}
	if len(got) != 1 || got[0] != "work" {
		t.Fatalf("expected normalized single tag, got %v", got)
	}

	if err := tags.Attach(ctx, rec.ID, "   "); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
	if err := tags.Attach(ctx, "missing-id", "work"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	removed, err := tags.Detach(ctx, rec.ID, "work")
	if err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if !removed {
		t.Fatal("Detach must report removal")
	}
	got, err = entries.TagsFor(ctx, rec.ID)
	if err != nil {
		t.Fatalf("TagsFor failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tags, got %v", got)
	}
}

func TestTagServiceRename(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	entries := NewEntryService(dbCtx)
	tags := NewTagService(dbCtx)

	a := textRecord("first", time.Now())
	b := textRecord("second", time.Now())
	c := textRecord("third", time.Now())
	if err := entries.Insert(ctx, a, []string{"work"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := entries.Insert(ctx, b, []string{"work", "job"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := entries.Insert(ctx, c, []string{"other"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := tags.SetColor(ctx, "work", "#ff0000"); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}

	touched, err := tags.Rename(ctx, "work", "job")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if touched != 2 {
		t.Fatalf("expected 2 touched entries, got %d", touched)
	}

	for _, rec := range []struct {
		id   string
		want []string
	}{
		{a.ID, []string{"job"}},
		{b.ID, []string{"job"}},
		{c.ID, []string{"other"}},
	} {
		got, err := entries.TagsFor(ctx, rec.id)
		if err != nil {
			t.Fatalf("TagsFor failed: %v", err)
		}
		sort.Strings(got)
		if len(got) != len(rec.want) {
			t.Fatalf("entry %s: expected %v, got %v", rec.id, rec.want, got)
		}
		for i := range got {
			if got[i] != rec.want[i] {
				t.Fatalf("entry %s: expected %v, got %v", rec.id, rec.want, got)
			}
		}
	}

	// The color rides along with the rename.
	color, err := tags.Color(ctx, "job")
	if err != nil {
		t.Fatalf("Color failed: %v", err)
	}
	if color == nil || color.Color != "#ff0000" {
		t.Fatalf("expected color migrated to new name, got %#v", color)
	}
	color, err = tags.Color(ctx, "work")
	if err != nil {
		t.Fatalf("Color failed: %v", err)
	}
	if color != nil {
		t.Fatalf("old tag color should be gone, got %#v", color)
	}
}

func TestTagServiceDeleteEverywhere(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	entries := NewEntryService(dbCtx)
	tags := NewTagService(dbCtx)

	a := textRecord("keep me intact", time.Now())
	b := textRecord("me too", time.Now())
	if err := entries.Insert(ctx, a, []string{"stale", "kept"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := entries.Insert(ctx, b, []string{"stale"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	detached, err := tags.DeleteEverywhere(ctx, "stale")
	if err != nil {
		t.Fatalf("DeleteEverywhere failed: %v", err)
	}
	if detached != 2 {
		t.Fatalf("expected 2 detachments, got %d", detached)
	}

	got, err := entries.TagsFor(ctx, a.ID)
	if err != nil {
		t.Fatalf("TagsFor failed: %v", err)
	}
	if len(got) != 1 || got[0] != "kept" {
		t.Fatalf("expected only kept tag, got %v", got)
	}
	got, err = entries.TagsFor(ctx, b.ID)
	if err != nil {
		t.Fatalf("TagsFor failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tags, got %v", got)
	}

	// Deleting the tag never mutates entry content.
	rec, err := entries.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Content != "keep me intact" {
		t.Fatalf("content changed: %q", rec.Content)
	}
}

func TestTagServiceListInUse(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	entries := NewEntryService(dbCtx)
	tags := NewTagService(dbCtx)

	a := textRecord("a", time.Now())
	b := textRecord("b", time.Now())
	if err := entries.Insert(ctx, a, []string{"work", "home"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := entries.Insert(ctx, b, []string{"work"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := tags.SetColor(ctx, "work", "#00ff00"); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}

	infos, err := tags.ListInUse(ctx)
	if err != nil {
		t.Fatalf("ListInUse failed: %v", err)
	}
	byName := map[string]TagInfo{}
	for _, info := range infos {
		byName[info.Tag] = info
	}
	if byName["work"].EntryCount != 2 || byName["work"].Color != "#00ff00" {
		t.Fatalf("unexpected work info: %#v", byName["work"])
	}
	if byName["home"].EntryCount != 1 || byName["home"].Color != "" {
		t.Fatalf("unexpected home info: %#v", byName["home"])
	}
}
