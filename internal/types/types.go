package types

// Trigger is the character that opens a mention query.
const Trigger = '@'

// DirectoryEntry is a referenceable user.
// The JSON tags match the directory wire format served by providers.
type DirectoryEntry struct {
	Handle      string `json:"username"`
	DisplayName string `json:"name"`
	AvatarRef   string `json:"avatar_url"`
}

// QuerySpan is a range of rune offsets into a buffer covering the in-progress
// mention token, trigger included. NoSpan means no query is open.
type QuerySpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NoSpan is the sentinel span.
var NoSpan = QuerySpan{Start: -1, End: -1}

// IsActive reports whether the span denotes an open query.
func (s QuerySpan) IsActive() bool {
	return s.Start >= 0 && s.End > s.Start
}

// Len returns the number of runes covered by the span.
func (s QuerySpan) Len() int {
	if !s.IsActive() {
		return 0
	}
	return s.End - s.Start
}

// CandidateSet is what the presentation layer renders for the active query.
type CandidateSet struct {
	// Visible is false when no query is open and the list should be hidden.
	Visible bool `json:"visible"`
	// Collecting is true while the directory fetch is still in flight.
	Collecting bool             `json:"collecting"`
	Query      string           `json:"query"`
	Entries    []DirectoryEntry `json:"entries"`
}

// Edit is a buffer with a caret position, produced by a replacement.
type Edit struct {
	Buffer string `json:"buffer"`
	Caret  int    `json:"caret"`
}
