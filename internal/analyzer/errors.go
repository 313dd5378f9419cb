package analyzer

import "github.com/rotisserie/eris"

// Sentinel errors for the two empty-result shapes callers must phrase
// differently: nothing matched at all, versus matches existed but every one
// was excluded by the caller's filters. Queries attempted before a corpus
// snapshot exists surface corpus.ErrNotReady unchanged.
var (
	ErrNotFound    = eris.New("analyzer: no matches found")
	ErrAllFiltered = eris.New("analyzer: all matches excluded by filters")
)
