// Package validation provides input validation for the typed-entry box.
package validation

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MaxEntryLen caps the typed buffer, in runes
const MaxEntryLen = 64

var (
	// ErrEntryFull is returned when the buffer already holds MaxEntryLen runes
	ErrEntryFull = errors.New("entry buffer full")
	// ErrEntryRune is returned for runes that cannot appear in an entry
	ErrEntryRune = errors.New("unsupported entry character")
)

// ValidateEntryRune accepts printable runes and rejects control characters,
// invalid code points and anything non-graphic.
func ValidateEntryRune(r rune) error {
	if r == utf8.RuneError || !utf8.ValidRune(r) {
		return fmt.Errorf("%w: invalid code point %U", ErrEntryRune, r)
	}
	if unicode.IsControl(r) {
		return fmt.Errorf("%w: control character %U", ErrEntryRune, r)
	}
	if !unicode.IsPrint(r) {
		return fmt.Errorf("%w: non-printable %U", ErrEntryRune, r)
	}
	return nil
}

// AppendEntryRune returns buffer with r appended. On error buffer is returned
// unchanged.
func AppendEntryRune(buffer string, r rune) (string, error) {
	if err := ValidateEntryRune(r); err != nil {
		return buffer, err
	}
	if utf8.RuneCountInString(buffer) >= MaxEntryLen {
		return buffer, fmt.Errorf("%w: max %d characters", ErrEntryFull, MaxEntryLen)
	}
	return buffer + string(r), nil
}

// TrimLastRune removes the final rune; an empty buffer stays empty.
func TrimLastRune(buffer string) string {
	if buffer == "" {
		return buffer
	}
	_, size := utf8.DecodeLastRuneInString(buffer)
	return buffer[:len(buffer)-size]
}
