// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lessen/internal/adapters/cas"
	_ "go.trai.ch/lessen/internal/adapters/config"
	_ "go.trai.ch/lessen/internal/adapters/fs"
	_ "go.trai.ch/lessen/internal/adapters/lessc"
	_ "go.trai.ch/lessen/internal/adapters/logger"
	_ "go.trai.ch/lessen/internal/adapters/memstore"
	_ "go.trai.ch/lessen/internal/adapters/telemetry"
	_ "go.trai.ch/lessen/internal/adapters/template"
	_ "go.trai.ch/lessen/internal/adapters/theme"
	_ "go.trai.ch/lessen/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/lessen/internal/app"
	_ "go.trai.ch/lessen/internal/engine/compcache"
	_ "go.trai.ch/lessen/internal/engine/materializer"
	_ "go.trai.ch/lessen/internal/engine/resolver"
)
