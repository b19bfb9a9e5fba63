package imagefile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dupe/internal/core/ports"
)

const (
	// SourceNodeID is the unique identifier for the raster source Graft node.
	SourceNodeID graft.ID = "adapter.imagefile.source"
	// SinkNodeID is the unique identifier for the raster sink Graft node.
	SinkNodeID graft.ID = "adapter.imagefile.sink"
)

func init() {
	graft.Register(graft.Node[ports.RasterSource]{
		ID:        SourceNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RasterSource, error) {
			return NewSource(), nil
		},
	})

	graft.Register(graft.Node[ports.RasterSink]{
		ID:        SinkNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RasterSink, error) {
			return NewSink(), nil
		},
	})
}
