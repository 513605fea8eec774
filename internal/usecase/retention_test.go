package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clipvault/clipvault/internal/clip"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/services"
	"github.com/clipvault/clipvault/internal/sidefile"
)

func setupUsecase(t *testing.T) (*database.Context, *sidefile.Store) {
	t.Helper()
	dbCtx, err := database.CreateDatabase(":memory:")
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}
	t.Cleanup(func() {
		if err := database.CloseDatabase(dbCtx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})
	return dbCtx, sidefile.New(t.TempDir())
}

func insertText(t *testing.T, dbCtx *database.Context, content string, createdAt time.Time, pinned bool) string {
	t.Helper()
	svc := services.NewEntryService(dbCtx)
	rec := database.EntryRecord{
		ID:        uuid.NewString(),
		Kind:      clip.KindText,
		Content:   content,
		Hash:      clip.FingerprintText(content),
		Pinned:    pinned,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := svc.Insert(context.Background(), rec, nil); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	return rec.ID
}

func intPtr(v int) *int { return &v }

func TestPolicyFromSettings(t *testing.T) {
	policy := PolicyFromSettings(config.Settings{})
	if policy.MaxAgeDays != DefaultMaxAgeDays || policy.MaxItems != DefaultMaxItems {
		t.Fatalf("unset fields must take defaults, got %+v", policy)
	}

	policy = PolicyFromSettings(config.Settings{MaxAgeDays: intPtr(0), MaxItems: intPtr(0)})
	if policy.MaxAgeDays != 0 || policy.MaxItems != 0 {
		t.Fatalf("explicit zero means unbounded, got %+v", policy)
	}

	policy = PolicyFromSettings(config.Settings{MaxAgeDays: intPtr(7), MaxItems: intPtr(2)})
	if policy.MaxAgeDays != 7 || policy.MaxItems != 2 {
		t.Fatalf("unexpected policy %+v", policy)
	}
}

func TestRetentionAgePhase(t *testing.T) {
	dbCtx, store := setupUsecase(t)
	ctx := context.Background()
	retention := NewRetention(dbCtx, store)
	svc := services.NewEntryService(dbCtx)

	now := time.Now()
	oldID := insertText(t, dbCtx, "ten days old", now.Add(-10*24*time.Hour), false)
	pinnedID := insertText(t, dbCtx, "ten days old but pinned", now.Add(-10*24*time.Hour), true)
	freshID := insertText(t, dbCtx, "fresh", now, false)

	result, err := retention.Run(ctx, Policy{MaxAgeDays: 7})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.RemovedByAge != 1 || result.RemovedByCount != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	if _, err := svc.Get(ctx, oldID); err == nil {
		t.Fatal("old unpinned entry should be removed")
	}
	if _, err := svc.Get(ctx, pinnedID); err != nil {
		t.Fatalf("pinned entry must survive: %v", err)
	}
	if _, err := svc.Get(ctx, freshID); err != nil {
		t.Fatalf("fresh entry must survive: %v", err)
	}
}

func TestRetentionCountPhase(t *testing.T) {
	dbCtx, store := setupUsecase(t)
	ctx := context.Background()
	retention := NewRetention(dbCtx, store)
	svc := services.NewEntryService(dbCtx)

	now := time.Now()
	oldest := insertText(t, dbCtx, "oldest", now.Add(-3*time.Hour), false)
	middle := insertText(t, dbCtx, "middle", now.Add(-2*time.Hour), false)
	newest := insertText(t, dbCtx, "newest", now.Add(-1*time.Hour), false)

	result, err := retention.Run(ctx, Policy{MaxItems: 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.RemovedByCount != 1 {
		t.Fatalf("expected 1 count removal, got %+v", result)
	}

	if _, err := svc.Get(ctx, oldest); err == nil {
		t.Fatal("oldest entry should be removed")
	}
	for _, id := range []string{middle, newest} {
		if _, err := svc.Get(ctx, id); err != nil {
			t.Fatalf("recent entry must survive: %v", err)
		}
	}
}

func TestRetentionIdempotent(t *testing.T) {
	dbCtx, store := setupUsecase(t)
	ctx := context.Background()
	retention := NewRetention(dbCtx, store)

	now := time.Now()
	insertText(t, dbCtx, "a", now.Add(-10*24*time.Hour), false)
	insertText(t, dbCtx, "b", now.Add(-2*time.Hour), false)
	insertText(t, dbCtx, "c", now.Add(-1*time.Hour), false)

	policy := Policy{MaxAgeDays: 7, MaxItems: 2}
	first, err := retention.Run(ctx, policy)
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if first.Total() != 1 {
		t.Fatalf("expected 1 removal in first pass, got %+v", first)
	}

	second, err := retention.Run(ctx, policy)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if second.Total() != 0 {
		t.Fatalf("second pass must remove nothing, got %+v", second)
	}
}

func TestRetentionUnboundedPolicy(t *testing.T) {
	dbCtx, store := setupUsecase(t)
	ctx := context.Background()
	retention := NewRetention(dbCtx, store)
	svc := services.NewEntryService(dbCtx)

	now := time.Now()
	for i := 0; i < 3; i++ {
		insertText(t, dbCtx, time.Duration(i).String(), now.Add(-100*24*time.Hour), false)
	}

	result, err := retention.Run(ctx, Policy{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Total() != 0 {
		t.Fatalf("zero thresholds must prune nothing, got %+v", result)
	}

	count, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 entries, got %d", count)
	}
}

func TestSweepOrphans(t *testing.T) {
	dbCtx, store := setupUsecase(t)
	ctx := context.Background()
	retention := NewRetention(dbCtx, store)
	svc := services.NewEntryService(dbCtx)

	name, err := store.Save(uuid.NewString(), []byte("referenced payload"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	rec := database.EntryRecord{
		ID:        uuid.NewString(),
		Kind:      clip.KindFile,
		Content:   "[file " + name + "]",
		Hash:      clip.FingerprintText("referenced payload"),
		SideFile:  name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := svc.Insert(ctx, rec, nil); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	orphan, err := store.Save(uuid.NewString(), []byte("orphan payload"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	removed, err := retention.SweepOrphans(ctx)
	if err != nil {
		t.Fatalf("SweepOrphans failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 orphan removed, got %d", removed)
	}
	if store.Exists(orphan) {
		t.Fatal("orphan should be gone")
	}
	if !store.Exists(name) {
		t.Fatal("referenced side file must survive")
	}
}
