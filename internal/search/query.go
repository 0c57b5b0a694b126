// Package search implements an asynchronous search cache: typed
// query parsing, a cache of in-flight StreamingView results keyed by query,
// and a poll step that pulls results off each cached entry's producer
// without blocking the render loop.
package search

import (
	"errors"
	"strings"

	"github.com/amaru-doctor/doctor/internal/store"
)

// ErrEmptyQuery is returned when the raw query text is blank after
// trimming. Parse failures never mutate cache state.
var ErrEmptyQuery = errors.New("search: empty query")

// ErrInvalidQuery is returned when the raw text doesn't fit the shape
// expected for kind (not valid hex, wrong length, bad prefix, ...).
type ErrInvalidQuery struct {
	Kind   store.Kind
	Reason string
}

func (e *ErrInvalidQuery) Error() string {
	return "search: invalid " + string(e.Kind) + " query: " + e.Reason
}

// Query is the typed result of parsing a user's search text against one
// entity kind.
// Query is comparable so it can key a map directly.
type Query struct {
	Kind store.Kind
	Text string
}

// Parse validates raw against the shape expected of kind and normalizes it
// into a Query. Grounded on the upstream node's per-entity parsers
// (search.rs/chain_search.rs), which each reject malformed input before
// ever touching the store rather than letting a bad lookup run.
func Parse(kind store.Kind, raw string) (Query, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{}, ErrEmptyQuery
	}
	switch kind {
	case store.KindUtxo:
		if err := validateTxHashRef(text); err != nil {
			return Query{}, &ErrInvalidQuery{Kind: kind, Reason: err.Error()}
		}
	case store.KindPool, store.KindDRep, store.KindBlockIssuer:
		if err := validateHexId(text); err != nil {
			return Query{}, &ErrInvalidQuery{Kind: kind, Reason: err.Error()}
		}
	case store.KindAccount:
		if len(text) < 3 {
			return Query{}, &ErrInvalidQuery{Kind: kind, Reason: "address too short"}
		}
	case store.KindProposal:
		if err := validateTxHashRef(text); err != nil {
			return Query{}, &ErrInvalidQuery{Kind: kind, Reason: err.Error()}
		}
	default:
		return Query{}, &ErrInvalidQuery{Kind: kind, Reason: "unrecognized kind"}
	}
	return Query{Kind: kind, Text: text}, nil
}

// validateHexId requires a plain hex string, as used for pool/drep/block
// issuer identifiers derived from a key hash.
func validateHexId(s string) error {
	if len(s) == 0 {
		return errors.New("empty identifier")
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return errors.New("not a hex identifier")
		}
	}
	return nil
}

// validateTxHashRef accepts either a bare 64-hex-char transaction hash or
// "<hash>#<index>" output-reference form.
func validateTxHashRef(s string) error {
	hash := s
	if i := strings.IndexByte(s, '#'); i >= 0 {
		hash = s[:i]
		idx := s[i+1:]
		if idx == "" {
			return errors.New("missing output index")
		}
		for _, r := range idx {
			if r < '0' || r > '9' {
				return errors.New("non-numeric output index")
			}
		}
	}
	if len(hash) != 64 {
		return errors.New("transaction hash must be 64 hex characters")
	}
	return validateHexId(hash)
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
