package core

import (
	"hash/fnv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/olivermillard/mention/internal/types"
)

// genericAvatars are used when an entry has no usable letter.
var genericAvatars = []string{"✿", "☗", "❖", "⌘", "〶", "☡", "〠", "❁", "◈", "◉"}

// AvatarGlyph returns a one-cell stand-in for an entry's avatar. An AvatarRef
// that is already a glyph is used as is. Otherwise the first letter of the
// display name is drawn circled, and entries without one get a generic glyph
// picked from the handle so the same user always looks the same.
func AvatarGlyph(entry types.DirectoryEntry) string {
	if IsGlyphAvatar(entry.AvatarRef) {
		return entry.AvatarRef
	}
	for _, r := range strings.ToLower(entry.DisplayName + entry.Handle) {
		if r >= 'a' && r <= 'z' {
			return string(rune('Ⓐ' + (r - 'a')))
		}
		if unicode.IsLetter(r) {
			break
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(entry.Handle))
	return genericAvatars[int(h.Sum32()%uint32(len(genericAvatars)))]
}

// IsGlyphAvatar reports whether ref is a short symbol rather than a URL or
// file path. Up to two runes are allowed for emoji with modifiers.
func IsGlyphAvatar(ref string) bool {
	if ref == "" || strings.ContainsAny(ref, "/.:") {
		return false
	}
	return utf8.RuneCountInString(ref) <= 2
}
