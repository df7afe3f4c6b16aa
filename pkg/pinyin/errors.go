package pinyin

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidColon is returned when ':' does not follow a 'u'.
	ErrInvalidColon = errors.New("colon must follow u")
	// ErrAmbiguousTone flags a multi-vowel syllable with no placement rule.
	ErrAmbiguousTone = errors.New("ambiguous tone placement")
)

// SyntaxError reports malformed numeric pinyin at a byte offset of the input.
type SyntaxError struct {
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pinyin: %v at offset %d", e.Err, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ToneError describes a syllable left untoned because no placement rule applies.
type ToneError struct {
	Syllable string
	Tone     int
	Offset   int
}

func (e *ToneError) Error() string {
	return fmt.Sprintf("pinyin: %v for %q tone %d at offset %d", ErrAmbiguousTone, e.Syllable, e.Tone, e.Offset)
}

func (e *ToneError) Unwrap() error { return ErrAmbiguousTone }
