package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clipvault/clipvault/internal/clip"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/services"
	"github.com/clipvault/clipvault/internal/sidefile"
)

func TestSetLabelStoredVerbatim(t *testing.T) {
	dbCtx, store := setupUsecase(t)
	ctx := context.Background()
	entries := NewEntry(dbCtx, store, 0)

	id := insertText(t, dbCtx, "some snippet", time.Now(), false)

	// User renames are kept as given, even past the auto-label cap.
	long := strings.Repeat("x", clip.MaxLabelWidth*2)
	rec, err := entries.SetLabel(ctx, id, &long)
	if err != nil {
		t.Fatalf("SetLabel error: %v", err)
	}
	if rec.DisplayLabel == nil || *rec.DisplayLabel != long {
		t.Fatalf("expected label stored verbatim, got %v", rec.DisplayLabel)
	}

	item, err := entries.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if item.DisplayLabel == nil || *item.DisplayLabel != long {
		t.Fatalf("expected persisted label of %d runes, got %v", len(long), item.DisplayLabel)
	}

	if _, err := entries.SetLabel(ctx, id, nil); err != nil {
		t.Fatalf("SetLabel clear error: %v", err)
	}
	item, err = entries.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if item.DisplayLabel != nil {
		t.Fatalf("expected cleared label, got %q", *item.DisplayLabel)
	}
}

func TestVerifyPayload(t *testing.T) {
	dbCtx, store := setupUsecase(t)
	ctx := context.Background()
	entries := NewEntry(dbCtx, store, 0)

	textID := insertText(t, dbCtx, "plain", time.Now(), false)
	ok, err := entries.VerifyPayload(ctx, textID)
	if err != nil {
		t.Fatalf("VerifyPayload error: %v", err)
	}
	if !ok {
		t.Fatal("entries without a side file must verify")
	}

	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	id := uuid.NewString()
	name, err := store.Save(id, data)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	now := time.Now()
	rec := database.EntryRecord{
		ID:        id,
		Kind:      clip.KindImage,
		Content:   sidefile.PlaceholderContent(clip.KindImage, name),
		Hash:      clip.Fingerprint(data),
		SideFile:  name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := services.NewEntryService(dbCtx).Insert(ctx, rec, nil); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	ok, err = entries.VerifyPayload(ctx, id)
	if err != nil {
		t.Fatalf("VerifyPayload error: %v", err)
	}
	if !ok {
		t.Fatal("expected intact side file to verify")
	}

	// Same id and sniffed extension, different bytes: overwrites in place.
	if _, err := store.Save(id, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 9, 9, 9}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	ok, err = entries.VerifyPayload(ctx, id)
	if err != nil {
		t.Fatalf("VerifyPayload error: %v", err)
	}
	if ok {
		t.Fatal("expected tampered side file to fail verification")
	}
}
