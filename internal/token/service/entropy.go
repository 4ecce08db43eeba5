package service

import (
	"crypto/rand"
	"errors"
	"io"

	apperrors "github.com/allisson/randtoken/internal/errors"
	"github.com/allisson/randtoken/internal/token/domain"
)

type cryptoSource struct {
	reader io.Reader
}

// NewCryptoSource returns an EntropySource that reads independent 128-bit blocks from
// reader. A nil reader selects crypto/rand.Reader. Read failures are returned as-is,
// tagged with domain.ErrEntropySource; there is no retry.
func NewCryptoSource(reader io.Reader) EntropySource {
	if reader == nil {
		reader = rand.Reader
	}
	return &cryptoSource{reader: reader}
}

// Fill reads buf one block at a time.
func (s *cryptoSource) Fill(buf []byte) error {
	if err := checkBlockAligned(buf); err != nil {
		return err
	}

	for off := 0; off < len(buf); off += domain.BlockSize {
		if _, err := io.ReadFull(s.reader, buf[off:off+domain.BlockSize]); err != nil {
			return &entropyError{err: err}
		}
	}

	return nil
}

func checkBlockAligned(buf []byte) error {
	if len(buf)%domain.BlockSize != 0 {
		return apperrors.Wrapf(
			apperrors.ErrInvalidInput,
			"entropy buffer length %d is not a multiple of %d",
			len(buf),
			domain.BlockSize,
		)
	}
	return nil
}

// entropyError tags a source failure with domain.ErrEntropySource. Unwrap yields the
// underlying error unchanged; Is matches ErrEntropySource and everything it wraps.
type entropyError struct {
	err error
}

func (e *entropyError) Error() string {
	return domain.ErrEntropySource.Error() + ": " + e.err.Error()
}

func (e *entropyError) Unwrap() error { return e.err }

func (e *entropyError) Is(target error) bool {
	return errors.Is(domain.ErrEntropySource, target)
}
