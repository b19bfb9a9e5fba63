package ports

import "go.trai.ch/dupe/internal/core/domain"

// Signer computes change signatures of corpus files.
//
//go:generate mockgen -source=signer.go -destination=mocks/mock_signer.go -package=mocks
type Signer interface {
	// Sign returns the current signature of the file at path.
	Sign(path string, mode domain.VerifyMode) (domain.Signature, error)
}
