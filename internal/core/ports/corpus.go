package ports

import (
	"context"

	"go.trai.ch/dupe/internal/core/domain"
)

// CorpusLister enumerates the candidate files of a corpus.
//
//go:generate mockgen -source=corpus.go -destination=mocks/mock_corpus.go -package=mocks
type CorpusLister interface {
	// List returns the image files directly inside dir whose extension is in exts.
	List(dir string, exts []string) ([]string, error)
}

// FormProvider returns the encoded form of a corpus file, computing it if needed.
type FormProvider interface {
	// Form returns the encoded form of the file at path.
	Form(ctx context.Context, path string) (*domain.EncodedForm, error)
}
