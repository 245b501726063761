package cli

import (
	"context"
	"fmt"

	"github.com/localmate/localmate/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search for places",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := joinArgs(args)
			places, err := app.Assistant.SearchPlaces(context.Background(), query)
			if err != nil {
				return err
			}
			if len(places) == 0 {
				fmt.Printf("No places found for %q\n", query)
				return nil
			}
			fmt.Print(formatter.PlacesTable(places, app.Plan.IsInPlan))
			fmt.Println(formatter.StyleDim.Render("Add one with 'localmate plan add " + query + " --pick N'"))
			return nil
		},
	}
}
