package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dupe/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the corpus lister Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// SignerNodeID is the unique identifier for the signer Graft node.
	SignerNodeID graft.ID = "adapter.fs.signer"
)

func init() {
	graft.Register(graft.Node[ports.CorpusLister]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CorpusLister, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Signer]{
		ID:        SignerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Signer, error) {
			return NewSigner(), nil
		},
	})
}
