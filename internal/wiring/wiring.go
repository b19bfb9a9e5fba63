// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/dupe/internal/adapters/cas"
	_ "go.trai.ch/dupe/internal/adapters/config"
	_ "go.trai.ch/dupe/internal/adapters/fs"
	_ "go.trai.ch/dupe/internal/adapters/imagefile"
	_ "go.trai.ch/dupe/internal/adapters/logger"
	_ "go.trai.ch/dupe/internal/adapters/telemetry"
	_ "go.trai.ch/dupe/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/dupe/internal/app"
)
