package entities

import "github.com/spf13/cobra"

// ControllerBind holds the Cobra metadata of a controller. Controllers sharing
// a Group are attached under one parent command named after the group.
type ControllerBind struct {
	Group string
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// Controller is a CLI entry point bound to a domain command.
type Controller interface {
	GetBind() ControllerBind
	Execute(command *cobra.Command, arguments []string)
	AddFlags(command *cobra.Command)
}
