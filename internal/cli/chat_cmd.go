package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/localmate/localmate/internal/cli/formatter"
	"github.com/localmate/localmate/internal/domain"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var newSession bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the travel assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := startOrResume(ctx, app, newSession)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if !app.interactive() {
					return fmt.Errorf("no message given; pass one or run in a terminal")
				}
				p := tea.NewProgram(newChatView(app, sess.ID), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}

			res, err := app.Chat.Send(ctx, sess.ID, joinArgs(args))
			if err != nil {
				return err
			}
			fmt.Println(formatter.StyleFg.Render(res.Reply))
			if len(res.Places) > 0 {
				fmt.Println()
				fmt.Print(formatter.PlacesTable(res.Places, app.Plan.IsInPlan))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&newSession, "new", false, "Start a fresh conversation")
	return cmd
}

func startOrResume(ctx context.Context, app *App, fresh bool) (*domain.ChatSession, error) {
	if fresh {
		return app.Chat.StartSession(ctx, "")
	}
	return app.Chat.ResumeSession(ctx)
}
