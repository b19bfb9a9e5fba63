package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dupe/internal/core/ports"
)

// NodeID is the unique identifier for the form store opener Graft node.
const NodeID graft.ID = "adapter.form_store"

func init() {
	graft.Register(graft.Node[ports.StoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StoreOpener, error) {
			return Opener{}, nil
		},
	})
}
