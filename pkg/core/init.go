// Package core wires the library together at startup: it pulls in the
// backend packages so their factories register, and loads the global
// configuration.
package core

import (
	"sync"

	"github.com/arthur-debert/gridbox/pkg/config"
	"github.com/arthur-debert/gridbox/pkg/logging"

	// Import all backend packages to register their factories
	_ "github.com/arthur-debert/gridbox/pkg/archive/binary"
	_ "github.com/arthur-debert/gridbox/pkg/archive/compressed"
)

var initOnce sync.Once

// Initialize sets up the core system by:
// 1. Importing backend packages to register their archive factories
// 2. Initializing configuration
//
// This function should be called at application startup before
// opening archives. Repeated calls are idempotent; backend
// registration itself happens in package init and therefore exactly
// once per process.
func Initialize() error {
	initOnce.Do(func() {
		logger := logging.GetLogger("core.init")

		config.Initialize(nil)

		logger.Debug().Msg("Core initialization completed")
	})
	return nil
}

// MustInitialize calls Initialize and panics on error.
// This is useful for main() functions where initialization failure
// should terminate the program.
func MustInitialize() {
	if err := Initialize(); err != nil {
		panic("Core initialization failed: " + err.Error())
	}
}
