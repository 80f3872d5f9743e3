package main

import (
	"os"

	"github.com/opencampus/coursehub/internal/pkg/logger"
	"github.com/opencampus/coursehub/internal/server"
)

func main() {
	// NewServer orchestrates config loading, database and search index
	// connections, dependency wiring and route setup.
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
