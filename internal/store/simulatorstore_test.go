package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorStoreIterateRespectsPerKindLimit(t *testing.T) {
	s := NewSimulatorStore(5)
	p := s.Iterate(context.Background(), KindPool)

	count := 0
	for {
		_, ok := p.Next(context.Background())
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 5, count)
}

func TestSimulatorStoreLookupIsDeterministicForEvenKeys(t *testing.T) {
	s := NewSimulatorStore(0)
	v1, ok1, err := s.Lookup(context.Background(), KindDRep, []byte{2})
	require.NoError(t, err)
	require.True(t, ok1)

	v2, ok2, err := s.Lookup(context.Background(), KindDRep, []byte{2})
	require.NoError(t, err)
	require.True(t, ok2)
	assert.Equal(t, v1, v2)
}

func TestSimulatorStoreLookupMissesOddKeys(t *testing.T) {
	s := NewSimulatorStore(0)
	_, ok, err := s.Lookup(context.Background(), KindDRep, []byte{3})
	require.NoError(t, err)
	assert.False(t, ok)
}
