package store

import (
	"context"
	"encoding/binary"
)

// SimulatorStore is a synthetic EntityStore generating deterministic
// entries on demand, used for the --backend simulator run mode and for
// exercising the rest of the program without a live node to connect to.
// The real store's on-disk format is out of scope by design (see the
// package doc in entitystore.go); this is the stand-in that lets the program run
// end to end.
type SimulatorStore struct {
	// PerKind bounds how many synthetic entries each kind produces before
	// Iterate's producer signals exhaustion. Zero means unbounded.
	PerKind int
}

var _ EntityStore = (*SimulatorStore)(nil)

func NewSimulatorStore(perKind int) *SimulatorStore {
	return &SimulatorStore{PerKind: perKind}
}

// Lookup synthesizes a value for any key whose first byte is even,
// simulating a sparse dataset with real misses.
func (s *SimulatorStore) Lookup(_ context.Context, kind Kind, key []byte) ([]byte, bool, error) {
	if len(key) == 0 || key[0]%2 != 0 {
		return nil, false, nil
	}
	return synthesizeValue(kind, key), true, nil
}

func (s *SimulatorStore) Iterate(_ context.Context, kind Kind) Producer[Entry] {
	return &simulatorProducer{kind: kind, limit: s.PerKind}
}

type simulatorProducer struct {
	kind  Kind
	limit int
	cur   int
}

func (p *simulatorProducer) Next(ctx context.Context) (Entry, bool) {
	if p.limit > 0 && p.cur >= p.limit {
		return Entry{}, false
	}
	select {
	case <-ctx.Done():
		return Entry{}, false
	default:
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(p.cur))
	entry := Entry{Key: key, Value: synthesizeValue(p.kind, key)}
	p.cur++
	return entry, true
}

func synthesizeValue(kind Kind, key []byte) []byte {
	v := make([]byte, 0, len(kind)+len(key)+1)
	v = append(v, []byte(kind)...)
	v = append(v, ':')
	v = append(v, key...)
	return v
}
