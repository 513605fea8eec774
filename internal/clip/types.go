// Package clip defines the clipboard entry domain model shared by the
// capture pipeline, the store, and the CLI surfaces.
package clip

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Kind classifies the payload of an entry. The set is closed; anything that
// is not text, a URL, or an image is stored as a generic file payload.
type Kind string

const (
	KindText  Kind = "text"
	KindURL   Kind = "url"
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

// ParseKind validates a kind string coming from flags or import documents.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindText, KindURL, KindImage, KindFile:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("invalid kind: %s (valid values: text, url, image, file)", s)
	}
}

// Binary reports whether entries of this kind carry a side-file payload.
func (k Kind) Binary() bool {
	return k == KindImage || k == KindFile
}

// Entry is one record in the clipboard history.
type Entry struct {
	ID           string
	Content      string
	Kind         Kind
	SideFile     string
	Hash         string
	DisplayLabel string
	Tags         []string
	Pinned       bool
	Trashed      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Label returns the user-facing label: the display label when set, the raw
// content otherwise. Content itself is never mutated by labelling.
func (e Entry) Label() string {
	if e.DisplayLabel != "" {
		return e.DisplayLabel
	}
	return e.Content
}

// MaxLabelWidth caps auto-derived display labels.
const MaxLabelWidth = 48

// Classify decides whether a text payload is plain text or a URL. Only
// absolute single-token http(s) URLs are re-classified.
func Classify(text string) Kind {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\r\n") {
		return KindText
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return KindText
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return KindURL
	}
	return KindText
}

// DeriveLabel produces the automatic display label for an entry: the host
// name for URLs, truncated text otherwise.
func DeriveLabel(content string, kind Kind) string {
	if kind == KindURL {
		if u, err := url.Parse(strings.TrimSpace(content)); err == nil && u.Host != "" {
			return TruncateLabel(u.Host)
		}
	}
	line := strings.TrimSpace(content)
	if idx := strings.IndexAny(line, "\r\n"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return TruncateLabel(line)
}

// TruncateLabel caps a label at MaxLabelWidth runes.
func TruncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxLabelWidth {
		return s
	}
	return string(runes[:MaxLabelWidth-1]) + "…"
}

// Fingerprint returns the SHA-256 hex digest of a payload. Dedup compares
// fingerprints within a kind, which preserves content-equality semantics
// without rescanning full payloads.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FingerprintText is Fingerprint over a string payload.
func FingerprintText(content string) string {
	return Fingerprint([]byte(content))
}
