package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders checks the Settings provided by the entry point. Settings
// are not constructed here because loading them needs the --config path.
func RegisterProviders(container *dig.Container) error {
	return container.Invoke(func(settings *Settings) error {
		return validateSettings(settings)
	})
}
