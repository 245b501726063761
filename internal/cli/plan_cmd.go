package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/localmate/localmate/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage the trip plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runPlanView(app)
			}
			return printPlan(app)
		},
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanAddCmd(app),
		newPlanRemoveCmd(app),
		newPlanMoveCmd(app),
		newPlanOptimizeCmd(app),
		newPlanClearCmd(app),
	)

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPlan(app)
		},
	}
}

func printPlan(app *App) error {
	// Pick up any server-side changes (and recomputed distances) first.
	// A planless or unreachable-backend state still prints local items.
	if err := app.Plan.Refresh(context.Background()); err != nil {
		fmt.Println(formatter.StyleYellow.Render("warning: " + err.Error()))
	}

	items := app.Plan.Items()
	if len(items) == 0 {
		fmt.Println("Plan is empty. Add places with 'localmate plan add <query>'.")
		return nil
	}
	fmt.Println(formatter.Header("Trip Plan"))
	fmt.Print(formatter.PlanTable(items))
	fmt.Println(formatter.PlanSummary(app.Plan.ItemCount(), app.Plan.TotalDistanceKm(), app.Plan.EstimatedDurationMin()))
	return nil
}

func newPlanAddCmd(app *App) *cobra.Command {
	var pick int

	cmd := &cobra.Command{
		Use:   "add <query>",
		Short: "Search for a place and add it to the plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			query := joinArgs(args)

			places, err := app.Assistant.SearchPlaces(ctx, query)
			if err != nil {
				return err
			}
			if len(places) == 0 {
				return fmt.Errorf("no places found for %q", query)
			}
			if pick < 1 || pick > len(places) {
				return fmt.Errorf("pick %d out of range (1-%d)", pick, len(places))
			}
			place := places[pick-1]

			if app.Plan.IsInPlan(place.ID) {
				fmt.Printf("%s is already in the plan\n", place.Name)
				return nil
			}

			item, err := app.Plan.AddItem(ctx, place)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (%s) as stop %d\n", item.Name, item.Category, app.Plan.ItemCount())
			return nil
		},
	}

	cmd.Flags().IntVar(&pick, "pick", 1, "Which search result to add (1-based)")
	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <stop>",
		Short: "Remove a stop from the plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := resolveItemID(app, args[0])
			if err != nil {
				return err
			}
			// The stop is gone locally even when the backend call fails;
			// report the failure without undoing the removal.
			if err := app.Plan.RemoveItem(context.Background(), itemID); err != nil {
				fmt.Println(formatter.StyleYellow.Render("warning: " + err.Error()))
			}
			fmt.Printf("Removed stop, %d remaining\n", app.Plan.ItemCount())
			return nil
		},
	}
}

func newPlanMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a stop to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}

			items := app.Plan.Items()
			if from < 1 || from > len(items) || to < 1 || to > len(items) {
				return fmt.Errorf("positions must be between 1 and %d", len(items))
			}

			ids := make([]string, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			moved := ids[from-1]
			ids = append(ids[:from-1], ids[from:]...)
			ids = append(ids[:to-1], append([]string{moved}, ids[to-1:]...)...)

			if err := app.Plan.Reorder(context.Background(), ids); err != nil {
				fmt.Println(formatter.StyleYellow.Render("warning: " + err.Error()))
			}
			return printPlan(app)
		},
	}
}

func newPlanOptimizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Reorder the plan to minimize travel distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Plan.ItemCount() < 2 {
				fmt.Println("Need at least two stops to optimize.")
				return nil
			}
			saved, err := app.Plan.Optimize(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.StyleGreen.Render(fmt.Sprintf("Optimized! Saved %.1f km", saved)))
			return printPlan(app)
		},
	}
}

func newPlanClearCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the plan and start fresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if !app.interactive() {
					return errors.New("refusing to clear without --force in non-interactive mode")
				}
				confirmed, err := confirmClear(app.Plan.ItemCount())
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Kept the plan.")
					return nil
				}
			}
			if err := app.Plan.ClearPlan(context.Background()); err != nil {
				return err
			}
			fmt.Println("Plan cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	return cmd
}

// confirmClear asks the user to confirm deleting the whole plan.
func confirmClear(count int) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete the plan and its %d stops?", count)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// resolveItemID accepts either a 1-based stop number or a raw item ID.
func resolveItemID(app *App, arg string) (string, error) {
	items := app.Plan.Items()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(items) {
			return "", fmt.Errorf("stop %d out of range (1-%d)", n, len(items))
		}
		return items[n-1].ID, nil
	}
	for _, it := range items {
		if it.ID == arg {
			return it.ID, nil
		}
	}
	return "", fmt.Errorf("no stop %q in the plan", arg)
}

func runPlanView(app *App) error {
	p := tea.NewProgram(newPlanView(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
