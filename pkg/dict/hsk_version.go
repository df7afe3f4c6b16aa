package dict

import (
	"fmt"
	"strings"
)

// HSKVersion selects one of the two HSK syllabi.
type HSKVersion string

const (
	HSK2 HSKVersion = "2.0" // "old" six-level syllabus
	HSK3 HSKVersion = "3.0" // "new" syllabus, levels 7-9 banded together
)

// ParseHSKVersion accepts "2", "2.0", "old", "3", "3.0" and "new".
// An empty string selects HSK 3.0.
func ParseHSKVersion(s string) (HSKVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2", "2.0", "old":
		return HSK2, nil
	case "", "3", "3.0", "new":
		return HSK3, nil
	}
	return "", fmt.Errorf("unknown HSK version %q", s)
}

// MaxLevel is the highest level of the syllabus.
func (v HSKVersion) MaxLevel() int {
	if v == HSK2 {
		return 6
	}
	return 7
}

// NormalizeLevel validates n for this version. HSK 3.0 levels 8 and 9 fold
// into the 7-9 band.
func (v HSKVersion) NormalizeLevel(n int) (int, error) {
	if v == HSK3 && n >= 7 && n <= 9 {
		return 7, nil
	}
	if n < 1 || n > v.MaxLevel() {
		return 0, fmt.Errorf("HSK %s level %d out of range 1-%d", v, n, v.MaxLevel())
	}
	return n, nil
}

// Levels holds a word's level in each syllabus; 0 means absent.
type Levels struct {
	Old int `json:"old,omitempty" yaml:"old,omitempty"`
	New int `json:"new,omitempty" yaml:"new,omitempty"`
}

// For returns the level for v, or 0.
func (l Levels) For(v HSKVersion) int {
	if v == HSK2 {
		return l.Old
	}
	return l.New
}

// Set records n for v.
func (l *Levels) Set(v HSKVersion, n int) {
	if v == HSK2 {
		l.Old = n
	} else {
		l.New = n
	}
}

// merge keeps the lowest non-zero level per version.
func (l *Levels) merge(o Levels) {
	l.Old = lowestLevel(l.Old, o.Old)
	l.New = lowestLevel(l.New, o.New)
}

func lowestLevel(a, b int) int {
	switch {
	case a == 0:
		return b
	case b == 0:
		return a
	case b < a:
		return b
	}
	return a
}
