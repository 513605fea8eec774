package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/services"
	"github.com/clipvault/clipvault/internal/sidefile"
)

// Retention default thresholds, applied when the settings file leaves a
// field unset. An explicit zero in the file means unbounded.
const (
	DefaultMaxAgeDays = 30
	DefaultMaxItems   = 100
)

// Policy holds effective retention thresholds. Zero disables a phase.
type Policy struct {
	MaxAgeDays int
	MaxItems   int
}

// PolicyFromSettings resolves the unset-versus-zero distinction into an
// effective policy.
func PolicyFromSettings(s config.Settings) Policy {
	policy := Policy{
		MaxAgeDays: DefaultMaxAgeDays,
		MaxItems:   DefaultMaxItems,
	}
	if s.MaxAgeDays != nil {
		policy.MaxAgeDays = *s.MaxAgeDays
	}
	if s.MaxItems != nil {
		policy.MaxItems = *s.MaxItems
	}
	return policy
}

// RetentionResult reports what one pruning pass removed.
type RetentionResult struct {
	RemovedByAge   int64
	RemovedByCount int64
	OrphansRemoved int
}

func (r RetentionResult) Total() int64 {
	return r.RemovedByAge + r.RemovedByCount + int64(r.OrphansRemoved)
}

// Retention prunes old and excess entries. Pinned entries are exempt from
// both phases; side-files of pruned entries are left on disk unless an
// orphan sweep is requested explicitly.
type Retention struct {
	entryService *services.EntryService
	store        *sidefile.Store
}

func NewRetention(dbCtx *database.Context, store *sidefile.Store) *Retention {
	return &Retention{
		entryService: services.NewEntryService(dbCtx),
		store:        store,
	}
}

// Run applies the age phase unconditionally, then the count phase only if
// the store is still over the item threshold. A second run against the same
// state removes nothing.
func (r *Retention) Run(ctx context.Context, policy Policy) (RetentionResult, error) {
	var result RetentionResult

	if policy.MaxAgeDays > 0 {
		cutoff := time.Now().Add(-time.Duration(policy.MaxAgeDays) * 24 * time.Hour)
		removed, err := r.entryService.PruneOlderThan(ctx, cutoff)
		if err != nil {
			return result, fmt.Errorf("age phase: %w", err)
		}
		result.RemovedByAge = removed
	}

	if policy.MaxItems > 0 {
		count, err := r.entryService.Count(ctx)
		if err != nil {
			return result, fmt.Errorf("count phase: %w", err)
		}
		excess := count - int64(policy.MaxItems)
		if excess > 0 {
			ids, err := r.entryService.OldestUnpinnedIDs(ctx, excess)
			if err != nil {
				return result, fmt.Errorf("count phase: %w", err)
			}
			removed, err := r.entryService.DeleteByIDs(ctx, ids)
			if err != nil {
				return result, fmt.Errorf("count phase: %w", err)
			}
			result.RemovedByCount = removed
		}
	}

	return result, nil
}

// SweepOrphans deletes side-files no entry references. Opt-in only; Run
// never calls it.
func (r *Retention) SweepOrphans(ctx context.Context) (int, error) {
	referenced, err := r.entryService.ReferencedSideFiles(ctx)
	if err != nil {
		return 0, err
	}
	keep := make(map[string]bool, len(referenced))
	for _, name := range referenced {
		keep[name] = true
	}

	names, err := r.store.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range names {
		if keep[name] {
			continue
		}
		if err := r.store.Delete(name); err != nil {
			return removed, fmt.Errorf("remove orphan %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}
