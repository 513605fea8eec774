package clip

import (
	"strings"
	"testing"
)

func TestClassifyURLs(t *testing.T) {
	cases := []struct {
		text string
		want Kind
	}{
		{"https://example.com/path?q=1", KindURL},
		{"http://example.com", KindURL},
		{"  https://example.com  ", KindURL},
		{"ftp://example.com", KindText},
		{"just some text", KindText},
		{"visit https://example.com today", KindText},
		{"https://example.com\nsecond line", KindText},
		{"", KindText},
	}

	for _, tc := range cases {
		if got := Classify(tc.text); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestDeriveLabelUsesHostForURLs(t *testing.T) {
	got := DeriveLabel("https://example.com/some/very/long/path", KindURL)
	if got != "example.com" {
		t.Fatalf("expected host label, got %q", got)
	}
}

func TestDeriveLabelTruncatesText(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := DeriveLabel(long, KindText)
	if len([]rune(got)) > MaxLabelWidth {
		t.Fatalf("label not capped: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestDeriveLabelFirstLineOnly(t *testing.T) {
	got := DeriveLabel("first line\nsecond line", KindText)
	if got != "first line" {
		t.Fatalf("expected first line, got %q", got)
	}
}

func TestLabelPrefersDisplayLabel(t *testing.T) {
	e := Entry{Content: "https://example.com/x", DisplayLabel: "docs"}
	if e.Label() != "docs" {
		t.Fatalf("expected display label, got %q", e.Label())
	}
	e.DisplayLabel = ""
	if e.Label() != e.Content {
		t.Fatalf("expected content fallback, got %q", e.Label())
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"text", "url", "image", "file"} {
		if _, err := ParseKind(valid); err != nil {
			t.Errorf("ParseKind(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseKind("video"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint([]byte("payload"))
	b := FingerprintText("payload")
	if a != b {
		t.Fatalf("fingerprint mismatch: %s vs %s", a, b)
	}
	if a == Fingerprint([]byte("other")) {
		t.Fatal("distinct payloads must not collide")
	}
}
