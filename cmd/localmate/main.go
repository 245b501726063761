package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/localmate/localmate/internal/api"
	"github.com/localmate/localmate/internal/chat"
	"github.com/localmate/localmate/internal/cli"
	"github.com/localmate/localmate/internal/db"
	"github.com/localmate/localmate/internal/plan"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine cache path: env var or default ~/.localmate/localmate.db
	dbPath := os.Getenv("LOCALMATE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".localmate", "localmate.db")
	}

	// Open the local transcript cache. Plan state lives on the backend and
	// is never written here.
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	apiCfg := api.LoadConfig()
	var observer api.Observer = api.NoopObserver{}
	if apiCfg.LogCalls {
		observer = api.NewLogObserver(os.Stderr)
	}
	client := api.NewClient(apiCfg, observer)

	transcripts := chat.NewSQLiteTranscriptRepo(database)

	app := &cli.App{
		Plan:      plan.NewStore(client, plan.LoadConfig()),
		Chat:      chat.NewService(client, transcripts, apiCfg.UserID),
		Assistant: client,
	}

	// Detect interactive terminal for the TUI entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
