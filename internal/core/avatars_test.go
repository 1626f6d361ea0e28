package core

import (
	"slices"
	"testing"

	"github.com/olivermillard/mention/internal/types"
)

func TestAvatarGlyph(t *testing.T) {
	tests := []struct {
		name  string
		entry types.DirectoryEntry
		want  string
	}{
		{name: "glyph ref kept", entry: types.DirectoryEntry{Handle: "olly", DisplayName: "Oliver Young", AvatarRef: "★"}, want: "★"},
		{name: "url ref uses name", entry: types.DirectoryEntry{Handle: "olly", DisplayName: "Oliver Young", AvatarRef: "https://example.test/olly.png"}, want: "Ⓞ"},
		{name: "lowercased", entry: types.DirectoryEntry{Handle: "zoe", DisplayName: "zoë"}, want: "Ⓩ"},
		{name: "falls back to handle", entry: types.DirectoryEntry{Handle: "bot", DisplayName: "  "}, want: "Ⓑ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AvatarGlyph(tt.entry); got != tt.want {
				t.Fatalf("AvatarGlyph() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAvatarGlyphGenericIsStable(t *testing.T) {
	entry := types.DirectoryEntry{Handle: "Ω-42", DisplayName: "Ωmega"}

	first := AvatarGlyph(entry)
	if !slices.Contains(genericAvatars, first) {
		t.Fatalf("expected generic avatar, got %q", first)
	}
	if again := AvatarGlyph(entry); again != first {
		t.Fatalf("expected stable avatar, got %q then %q", first, again)
	}
}

func TestIsGlyphAvatar(t *testing.T) {
	for ref, want := range map[string]bool{
		"":                 false,
		"✿":                true,
		"👍🏽":               true,
		"olly.png":         false,
		"https://x.test/a": false,
		"abc":              false,
	} {
		if got := IsGlyphAvatar(ref); got != want {
			t.Fatalf("IsGlyphAvatar(%q) = %v, want %v", ref, got, want)
		}
	}
}
