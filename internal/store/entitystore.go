// Package store defines the read-only contract the program assumes of the
// embedded key-value store, and the windowed, lazily
// prefetched StreamingView built on top of it. The store's
// own internals — its on-disk format, its transaction model — are
// deliberately out of scope; only the lookup/iterate shape is
// specified here.
package store

import "context"

// Kind identifies one of the recognized entity families.
type Kind string

const (
	KindAccount     Kind = "accounts"
	KindDRep        Kind = "dreps"
	KindPool        Kind = "pools"
	KindProposal    Kind = "proposals"
	KindBlockIssuer Kind = "block-issuers"
	KindUtxo        Kind = "utxos"
)

// Entry is one (key, value) pair as produced by Iterate. Keys and values
// are opaque to the program — it never interprets their bytes, only passes
// them to the presentation layer.
type Entry struct {
	Key   []byte
	Value []byte
}

// EntityStore is the external, read-only interface the program assumes of the
// underlying embedded KV store. The only implementation in this package is
// SimulatorStore (simulatorstore.go), a synthetic stand-in; no wrapper
// over the node's on-disk store is part of this repository.
type EntityStore interface {
	// Lookup returns the value for key under kind, or ok=false if absent.
	Lookup(ctx context.Context, kind Kind, key []byte) (value []byte, ok bool, err error)

	// Iterate returns a lazy producer over every (key, value) pair under
	// kind. The returned Producer must be safe to consume from a single
	// goroutine and must stop doing work once its context is canceled.
	Iterate(ctx context.Context, kind Kind) Producer[Entry]
}

// Producer is a lazy, pull-based source of items, backed in production by
// a dedicated blocking worker reading the KV store and feeding a bounded
// channel — this is the producer side of StreamingView.
type Producer[T any] interface {
	// Next blocks until an item is ready, the producer is exhausted, or ctx
	// is done. ok is false exactly when the producer has no more items.
	Next(ctx context.Context) (item T, ok bool)
}
