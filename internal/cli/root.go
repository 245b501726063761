package cli

import (
	"github.com/localmate/localmate/internal/api"
	"github.com/localmate/localmate/internal/chat"
	"github.com/localmate/localmate/internal/plan"
	"github.com/spf13/cobra"
)

// App holds references to the stores and services used by CLI commands.
type App struct {
	Plan      *plan.Store
	Chat      *chat.Service
	Assistant api.AssistantAPI

	// IsInteractive reports whether stdin is a terminal; interactive
	// commands fall back to plain output when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "localmate" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "localmate",
		Short: "Travel assistant: discover places, build a trip plan",
	}

	root.AddCommand(
		newPlanCmd(app),
		newChatCmd(app),
		newSearchCmd(app),
	)

	return root
}
