package dict

import (
	"fmt"
	"sync"

	"github.com/longbridgeapp/opencc"
)

var (
	s2tOnce sync.Once
	s2t     *opencc.OpenCC
	s2tErr  error

	// traditionalOf is replaced in tests.
	traditionalOf = toTraditional
)

// toTraditional converts simplified characters with OpenCC's s2t tables.
// The converter is built on first use.
func toTraditional(s string) (string, error) {
	s2tOnce.Do(func() {
		s2t, s2tErr = opencc.New("s2t")
	})
	if s2tErr != nil {
		return "", fmt.Errorf("opencc s2t: %w", s2tErr)
	}
	return s2t.Convert(s)
}
