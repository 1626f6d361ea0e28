package core

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/olivermillard/mention/internal/types"
)

// Mention is a completed reference to a directory entry inside posted text.
// Start and End are byte offsets into the text.
type Mention struct {
	Entry types.DirectoryEntry
	Start int
	End   int
}

// FindMentions returns the non-overlapping occurrences of directory display
// names in body, in text order. Longer names win over names they contain, and
// a name only counts when it is not glued to surrounding letters or digits.
func FindMentions(body string, directory []types.DirectoryEntry) []Mention {
	if body == "" || len(directory) == 0 {
		return nil
	}

	byLength := make([]types.DirectoryEntry, 0, len(directory))
	for _, entry := range directory {
		if strings.TrimSpace(entry.DisplayName) != "" {
			byLength = append(byLength, entry)
		}
	}
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(byLength[i].DisplayName) > len(byLength[j].DisplayName)
	})

	taken := make([]bool, len(body))
	var mentions []Mention
	for _, entry := range byLength {
		name := entry.DisplayName
		offset := 0
		for {
			idx := strings.Index(body[offset:], name)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(name)
			offset = end
			if !standsAlone(body, start, end) || overlaps(taken, start, end) {
				continue
			}
			for i := start; i < end; i++ {
				taken[i] = true
			}
			mentions = append(mentions, Mention{Entry: entry, Start: start, End: end})
		}
	}

	sort.Slice(mentions, func(i, j int) bool {
		return mentions[i].Start < mentions[j].Start
	})
	return mentions
}

func standsAlone(body string, start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(body[:start])
		if isAlphaNum(prev) {
			return false
		}
	}
	if end < len(body) {
		next, _ := utf8.DecodeRuneInString(body[end:])
		if isAlphaNum(next) {
			return false
		}
	}
	return true
}

func overlaps(taken []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if taken[i] {
			return true
		}
	}
	return false
}

func isAlphaNum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
