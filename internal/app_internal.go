package internal

import (
	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/infrastructure/repositories/mirror"
)

// AppInternal holds the controllers exposed by the CLI and the resources to
// release when it exits.
type AppInternal struct {
	controllers []entities.Controller
	db          *mirror.DB
}

// NewAppInternal creates the application context.
func NewAppInternal(controllers *[]entities.Controller, db *mirror.DB) *AppInternal {
	return &AppInternal{controllers: *controllers, db: db}
}

// GetControllers returns every controller to bind as a subcommand.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// Close releases the document mirror.
func (it *AppInternal) Close() error {
	return it.db.Close()
}
