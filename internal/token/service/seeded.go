package service

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20"

	"github.com/allisson/randtoken/internal/token/domain"
)

// SeededSource is a deterministic EntropySource backed by a ChaCha20 keystream keyed
// with SHA-256(seed). The same seed always yields the same sequence of blocks, which
// makes it suitable for reproducible fixtures. It is safe for concurrent use, but the
// interleaving of concurrent callers decides which caller receives which blocks.
type SeededSource struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
}

// NewSeededSource creates a SeededSource from an arbitrary, non-empty seed.
func NewSeededSource(seed []byte) (*SeededSource, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("%w: seed cannot be empty", domain.ErrEntropySource)
	}

	key := sha256.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, &entropyError{err: err}
	}

	return &SeededSource{cipher: c}, nil
}

// Fill writes the next len(buf) keystream bytes into buf, block by block.
func (s *SeededSource) Fill(buf []byte) error {
	if err := checkBlockAligned(buf); err != nil {
		return err
	}

	clear(buf)

	s.mu.Lock()
	defer s.mu.Unlock()

	for off := 0; off < len(buf); off += domain.BlockSize {
		block := buf[off : off+domain.BlockSize]
		s.cipher.XORKeyStream(block, block)
	}

	return nil
}
