package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/randtoken/internal/errors"
	"github.com/allisson/randtoken/internal/token/domain"
)

func TestNewSeededSource_EmptySeed(t *testing.T) {
	source, err := NewSeededSource(nil)
	assert.Nil(t, source)
	assert.ErrorIs(t, err, domain.ErrEntropySource)
}

func TestSeededSource_Deterministic(t *testing.T) {
	first, err := NewSeededSource([]byte("fixture-seed"))
	require.NoError(t, err)
	second, err := NewSeededSource([]byte("fixture-seed"))
	require.NoError(t, err)

	a := make([]byte, 64)
	b := make([]byte, 64)
	require.NoError(t, first.Fill(a))
	require.NoError(t, second.Fill(b))

	assert.Equal(t, a, b)
	assert.NotEqual(t, make([]byte, 64), a)
}

func TestSeededSource_StreamContinues(t *testing.T) {
	source, err := NewSeededSource([]byte("fixture-seed"))
	require.NoError(t, err)
	reference, err := NewSeededSource([]byte("fixture-seed"))
	require.NoError(t, err)

	first := make([]byte, 16)
	second := make([]byte, 16)
	require.NoError(t, source.Fill(first))
	require.NoError(t, source.Fill(second))
	assert.NotEqual(t, first, second)

	// Two 16-byte fills equal one 32-byte fill.
	combined := make([]byte, 32)
	require.NoError(t, reference.Fill(combined))
	assert.Equal(t, append(first, second...), combined)
}

func TestSeededSource_DifferentSeeds(t *testing.T) {
	a, err := NewSeededSource([]byte("seed-a"))
	require.NoError(t, err)
	b, err := NewSeededSource([]byte("seed-b"))
	require.NoError(t, err)

	bufA := make([]byte, 32)
	bufB := make([]byte, 32)
	require.NoError(t, a.Fill(bufA))
	require.NoError(t, b.Fill(bufB))

	assert.NotEqual(t, bufA, bufB)
}

func TestSeededSource_OverwritesBuffer(t *testing.T) {
	a, err := NewSeededSource([]byte("seed"))
	require.NoError(t, err)
	b, err := NewSeededSource([]byte("seed"))
	require.NoError(t, err)

	dirty := make([]byte, 16)
	for i := range dirty {
		dirty[i] = 0xff
	}
	clean := make([]byte, 16)

	require.NoError(t, a.Fill(dirty))
	require.NoError(t, b.Fill(clean))
	assert.Equal(t, clean, dirty)
}

func TestSeededSource_RejectsUnalignedBuffer(t *testing.T) {
	source, err := NewSeededSource([]byte("seed"))
	require.NoError(t, err)

	assert.ErrorIs(t, source.Fill(make([]byte, 17)), apperrors.ErrInvalidInput)
}

func TestSeededSource_ConcurrentFill(t *testing.T) {
	source, err := NewSeededSource([]byte("seed"))
	require.NoError(t, err)

	const workers = 8
	results := make([][]byte, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := make([]byte, 32)
			assert.NoError(t, source.Fill(buf))
			results[i] = buf
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for _, r := range results {
		seen[string(r)] = true
	}
	assert.Len(t, seen, workers, "concurrent callers received overlapping keystream")
}
