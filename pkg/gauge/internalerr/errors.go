package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrDuplicate        = errors.New("duplicate article")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrFeedUnavailable  = errors.New("reference feed unavailable")
	ErrLexiconLoad      = errors.New("lexicon load failure")
)
