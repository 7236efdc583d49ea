// Package di provides dependency injection container
package di

import (
	"github.com/aheien/tbvec/pkg/api"
	"github.com/aheien/tbvec/pkg/journal"
)

// JournalOpener opens a run journal at the given path
type JournalOpener func(path string) (*journal.Journal, error)

// Container holds all the dependencies for the application
type Container struct {
	journalOpener JournalOpener
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		journalOpener: journal.Open,
		serverFactory: api.NewServerFactory(),
	}
}

// GetJournalOpener returns the journal opener
func (c *Container) GetJournalOpener() JournalOpener {
	return c.journalOpener
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetJournalOpener allows overriding journal creation (for testing)
func (c *Container) SetJournalOpener(opener JournalOpener) {
	c.journalOpener = opener
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
