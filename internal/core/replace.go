package core

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/olivermillard/mention/internal/types"
)

// ErrInvalidSpan is returned when a replacement is requested for a span that
// is not an open query in the buffer.
var ErrInvalidSpan = errors.New("invalid query span")

// ReplaceSpan substitutes replacement for the span's contents and places the
// caret right after the inserted text. Nothing outside the span is touched.
func ReplaceSpan(buffer string, span types.QuerySpan, replacement string) (types.Edit, error) {
	runes := []rune(buffer)
	if !validSpan(runes, span) {
		return types.Edit{}, fmt.Errorf("%w: {%d,%d} in buffer of length %d", ErrInvalidSpan, span.Start, span.End, len(runes))
	}

	updated := make([]rune, 0, len(runes)-span.Len()+utf8.RuneCountInString(replacement))
	updated = append(updated, runes[:span.Start]...)
	updated = append(updated, []rune(replacement)...)
	updated = append(updated, runes[span.End:]...)

	return types.Edit{
		Buffer: string(updated),
		Caret:  span.Start + utf8.RuneCountInString(replacement),
	}, nil
}

// MustReplaceSpan is like ReplaceSpan but panics on an invalid span.
func MustReplaceSpan(buffer string, span types.QuerySpan, replacement string) types.Edit {
	edit, err := ReplaceSpan(buffer, span, replacement)
	if err != nil {
		panic(err)
	}
	return edit
}
