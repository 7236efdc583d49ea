package api

import "github.com/rs/zerolog"

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer assembles the server with its metrics and starts listening
func (s *DefaultServerStarter) StartServer(recorder Recorder, config ServerConfig, logger zerolog.Logger) error {
	metrics := NewMetrics()
	server := NewServer(recorder, config, metrics, logger)
	return StartServer(server)
}
