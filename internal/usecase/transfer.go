package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/capture"
	"github.com/clipvault/clipvault/internal/clip"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/services"
	"github.com/clipvault/clipvault/internal/sidefile"
)

// DeepLinkScheme prefixes share links the import command accepts.
const DeepLinkScheme = "clipvault"

// DocumentEntry is one entry in an export document. Binary payloads travel
// inline as base64 so the document is self-contained.
type DocumentEntry struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Content   string   `json:"content"`
	Label     *string  `json:"label,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Pinned    bool     `json:"pinned,omitempty"`
	CreatedAt int64    `json:"created_at"`
	Data      string   `json:"data,omitempty"`
}

// Document is the export/import wire format.
type Document struct {
	Entries   []DocumentEntry   `json:"entries"`
	TagColors map[string]string `json:"tag_colors,omitempty"`
}

// Transfer implements export, import, and deep-link resolution.
type Transfer struct {
	entryService *services.EntryService
	tagService   *services.TagService
	store        *sidefile.Store
	logger       *zap.Logger
	client       *http.Client
}

func NewTransfer(dbCtx *database.Context, store *sidefile.Store, logger *zap.Logger) *Transfer {
	return &Transfer{
		entryService: services.NewEntryService(dbCtx),
		tagService:   services.NewTagService(dbCtx),
		store:        store,
		logger:       logger,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Export builds a document from non-trashed entries, optionally restricted
// to one tag. Side-file read failures skip the entry with a warning rather
// than failing the export.
func (t *Transfer) Export(ctx context.Context, tag string) (*Document, error) {
	filter := database.ListFilter{Tag: tag}
	records, err := t.entryService.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	doc := &Document{Entries: make([]DocumentEntry, 0, len(records))}
	for _, rec := range records {
		entry := DocumentEntry{
			ID:        rec.ID,
			Kind:      string(rec.Kind),
			Content:   rec.Content,
			Label:     rec.DisplayLabel,
			Pinned:    rec.Pinned,
			CreatedAt: rec.CreatedAt.UnixNano(),
		}
		entry.Tags, err = t.entryService.TagsFor(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		if rec.SideFile != "" {
			data, err := t.store.Read(rec.SideFile)
			if err != nil {
				t.logger.Warn("skipping entry with unreadable side file",
					zap.String("id", rec.ID),
					zap.String("side_file", rec.SideFile),
					zap.Error(err))
				continue
			}
			entry.Data = base64.StdEncoding.EncodeToString(data)
		}
		doc.Entries = append(doc.Entries, entry)
	}

	doc.TagColors, err = t.tagService.Colors(ctx)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		// Only ship colors for tags the filtered entries actually carry.
		used := map[string]bool{}
		for _, entry := range doc.Entries {
			for _, tg := range entry.Tags {
				used[tg] = true
			}
		}
		for name := range doc.TagColors {
			if !used[name] {
				delete(doc.TagColors, name)
			}
		}
	}
	return doc, nil
}

// ImportStats reports an import outcome. Malformed or duplicate records do
// not fail the import.
type ImportStats struct {
	Imported int
	Skipped  int
	Failed   int
}

// Import merges a document into the local store with the same dedup rule as
// live capture: an existing entry with the same kind and fingerprint wins.
// New records keep the document's id, label, pin state, and capture time, so
// a round trip through export and import is lossless.
func (t *Transfer) Import(ctx context.Context, doc *Document) (ImportStats, error) {
	var stats ImportStats

	for idx, entry := range doc.Entries {
		if err := t.importEntry(ctx, entry); err != nil {
			if errors.Is(err, errDuplicateRecord) {
				stats.Skipped++
				continue
			}
			stats.Failed++
			t.logger.Warn("skipping malformed import record",
				zap.Int("index", idx),
				zap.Error(err))
			continue
		}
		stats.Imported++
	}

	for tag, color := range doc.TagColors {
		if err := t.tagService.SetColor(ctx, tag, color); err != nil {
			t.logger.Warn("import tag color not applied",
				zap.String("tag", tag), zap.Error(err))
		}
	}

	return stats, nil
}

var errDuplicateRecord = errors.New("duplicate record")

func (t *Transfer) importEntry(ctx context.Context, entry DocumentEntry) error {
	kind, err := clip.ParseKind(entry.Kind)
	if err != nil {
		return err
	}

	var data []byte
	var hash string
	switch {
	case entry.Data != "":
		data, err = base64.StdEncoding.DecodeString(entry.Data)
		if err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		hash = clip.Fingerprint(data)
	case entry.Content != "":
		hash = clip.FingerprintText(entry.Content)
	default:
		return capture.ErrEmpty
	}

	if dup, err := t.entryService.FindDuplicate(ctx, kind, hash); err != nil {
		return err
	} else if dup != nil {
		return errDuplicateRecord
	}

	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	} else if existing, err := t.entryService.Get(ctx, id); err == nil && existing != nil {
		// The id is taken by different content; keep both entries.
		id = uuid.NewString()
	}

	createdAt := time.Now()
	if entry.CreatedAt > 0 {
		createdAt = time.Unix(0, entry.CreatedAt)
	}

	rec := database.EntryRecord{
		ID:           id,
		Kind:         kind,
		Content:      entry.Content,
		Hash:         hash,
		DisplayLabel: entry.Label,
		Pinned:       entry.Pinned,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if len(data) > 0 {
		name, err := t.store.Save(id, data)
		if err != nil {
			return fmt.Errorf("write side file: %w", err)
		}
		rec.SideFile = name
		if rec.Content == "" {
			rec.Content = sidefile.PlaceholderContent(kind, name)
		}
	}

	if err := t.entryService.Insert(ctx, rec, entry.Tags); err != nil {
		if rec.SideFile != "" {
			_ = t.store.Delete(rec.SideFile)
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// ResolveSource turns an import argument into document bytes. Accepts a
// clipvault://import?src=<location> deep link, an http(s) URL, or a local
// file path. Network failures surface as errors without touching state.
func (t *Transfer) ResolveSource(ctx context.Context, src string) ([]byte, error) {
	location := src

	if strings.HasPrefix(src, DeepLinkScheme+"://") {
		parsed, err := url.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse deep link: %w", err)
		}
		if parsed.Host != "import" {
			return nil, fmt.Errorf("unsupported deep link action %q", parsed.Host)
		}
		location = parsed.Query().Get("src")
		if location == "" {
			return nil, fmt.Errorf("deep link is missing the src parameter")
		}
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return t.fetch(ctx, location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return data, nil
}

// ParseDocument decodes document bytes, rejecting documents that are not
// JSON at all. Per-record problems are handled later by Import.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// EncodeDocument renders a document for export.
func EncodeDocument(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}

func (t *Transfer) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", location, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}
