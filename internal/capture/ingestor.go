package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clipvault/clipvault/internal/clip"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/services"
	"github.com/clipvault/clipvault/internal/sidefile"
)

// ErrTooLarge is returned when a payload exceeds the configured size cap.
var ErrTooLarge = errors.New("payload exceeds maximum item size")

// ErrEmpty is returned when there is nothing to capture.
var ErrEmpty = errors.New("empty payload")

// Result describes the outcome of one ingestion attempt.
type Result struct {
	Entry     database.EntryRecord
	Duplicate bool
}

// Ingestor turns raw clipboard payloads into stored entries. Text is
// classified before the duplicate check so that an http(s) URL captured as
// plain text dedups against earlier url entries, not text ones.
type Ingestor struct {
	entries *services.EntryService
	store   *sidefile.Store
	maxSize int
}

func NewIngestor(entries *services.EntryService, store *sidefile.Store, maxSize int) *Ingestor {
	return &Ingestor{
		entries: entries,
		store:   store,
		maxSize: maxSize,
	}
}

// IngestText captures a text payload, re-classifying single-token absolute
// URLs. A duplicate of the same kind and fingerprint is a no-op.
func (i *Ingestor) IngestText(ctx context.Context, text string, tags []string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmpty
	}
	if i.maxSize > 0 && len(text) > i.maxSize {
		return nil, ErrTooLarge
	}

	kind := clip.Classify(text)
	hash := clip.FingerprintText(text)

	if dup, err := i.entries.FindDuplicate(ctx, kind, hash); err != nil {
		return nil, err
	} else if dup != nil {
		return &Result{Entry: *dup, Duplicate: true}, nil
	}

	now := time.Now()
	rec := database.EntryRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		Content:   text,
		Hash:      hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if kind == clip.KindURL {
		label := clip.DeriveLabel(text, kind)
		rec.DisplayLabel = &label
	}

	if err := i.entries.Insert(ctx, rec, tags); err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return &Result{Entry: rec}, nil
}

// IngestBinary captures an image or file payload. The bytes land in a
// side-file named after the entry id; the entry content is a placeholder.
func (i *Ingestor) IngestBinary(ctx context.Context, data []byte, tags []string) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if i.maxSize > 0 && len(data) > i.maxSize {
		return nil, ErrTooLarge
	}

	kind := sidefile.KindFor(data)
	hash := clip.Fingerprint(data)

	if dup, err := i.entries.FindDuplicate(ctx, kind, hash); err != nil {
		return nil, err
	} else if dup != nil {
		return &Result{Entry: *dup, Duplicate: true}, nil
	}

	id := uuid.NewString()
	name, err := i.store.Save(id, data)
	if err != nil {
		return nil, fmt.Errorf("write side file: %w", err)
	}

	now := time.Now()
	rec := database.EntryRecord{
		ID:        id,
		Kind:      kind,
		Content:   sidefile.PlaceholderContent(kind, name),
		Hash:      hash,
		SideFile:  name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := i.entries.Insert(ctx, rec, tags); err != nil {
		// Keep the store consistent when the index insert fails.
		_ = i.store.Delete(name)
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return &Result{Entry: rec}, nil
}
