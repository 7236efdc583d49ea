package api

import "github.com/rs/zerolog"

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer assembles and starts the API server
	StartServer(recorder Recorder, config ServerConfig, logger zerolog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
