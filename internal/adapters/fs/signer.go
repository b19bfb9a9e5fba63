package fs

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Signer = (*Signer)(nil)

// Signer computes change signatures from file metadata and, optionally,
// file contents.
type Signer struct{}

// NewSigner creates a new Signer.
func NewSigner() *Signer {
	return &Signer{}
}

// Sign returns the signature of the file at path. VerifyContent adds the
// xxhash of the file bytes.
func (s *Signer) Sign(path string, mode domain.VerifyMode) (domain.Signature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Signature{}, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}

	sig := domain.Signature{
		Size:        info.Size(),
		ModTimeNano: info.ModTime().UnixNano(),
	}
	if mode != domain.VerifyContent {
		return sig, nil
	}

	sig.ContentHash, err = s.hashFile(path)
	if err != nil {
		return domain.Signature{}, err
	}
	return sig, nil
}

func (s *Signer) hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}
	return h.Sum64(), nil
}
