package dict

import "errors"

var (
	ErrUnknownCorpusKind = errors.New("unknown corpus kind")
)
