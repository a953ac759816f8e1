package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/progdeck/progdeck/internal/config"
	"github.com/progdeck/progdeck/internal/domain"
	"github.com/progdeck/progdeck/internal/intelligence"
	"github.com/progdeck/progdeck/internal/snapshot"
	"github.com/progdeck/progdeck/internal/state"
	"github.com/progdeck/progdeck/internal/summary"
)

// App holds the wired services CLI commands run against. Program data is
// loaded per invocation from the configured file so one-shot commands and the
// TUI see the same rules.
type App struct {
	Agent     intelligence.AgentService
	Plans     intelligence.PlanService
	Summaries intelligence.SummaryService
	Log       zerolog.Logger

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// filePath is bound to the persistent --file flag.
	filePath string
	// snapshotPath is bound to --snapshot; when set the TUI saves the
	// program there on quit.
	snapshotPath string
}

func (a *App) loadData() (domain.ProgramData, error) {
	path := a.filePath
	if path == "" {
		path = os.Getenv(config.EnvFile)
	}
	return config.LoadOrSeed(path)
}

// NewRootCmd creates the top-level "progdeck" command. Running it without a
// subcommand launches the TUI dashboard.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "progdeck",
		Short: "Terminal program-management dashboard",
		Long: `A program-management dashboard in the terminal: projects, resources,
milestones and deliverables with a timeline, configurable statuses and
AI-assisted status summaries.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	root.PersistentFlags().StringVar(&app.filePath, "file", "",
		"program YAML file (default $"+config.EnvFile+" or built-in demo data)")
	root.Flags().StringVar(&app.snapshotPath, "snapshot", "",
		"SQLite file to save the program to on quit")

	root.AddCommand(
		newAskCmd(app),
		newSummaryCmd(app),
		newExportCmd(app),
		newLoadCmd(app),
	)

	return root
}

func runTUI(app *App) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		fmt.Fprintln(os.Stderr, "progdeck needs an interactive terminal. Try 'progdeck ask' or 'progdeck summary' for one-shot use.")
		return nil
	}

	data, err := app.loadData()
	if err != nil {
		return err
	}

	shared := &SharedState{
		Store:        state.NewStore(data),
		Agent:        app.Agent,
		Plans:        app.Plans,
		Summaries:    app.Summaries,
		Workflow:     summary.New(),
		Log:          app.Log,
		SectionOrder: DefaultSectionOrder(),
	}
	shared.SanitizeHeaderIcon()

	program := tea.NewProgram(newAppModel(shared), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}

	if app.snapshotPath != "" {
		if err := saveSnapshot(app.snapshotPath, shared.Store.Data()); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}
	return nil
}

func saveSnapshot(path string, data domain.ProgramData) error {
	db, err := snapshot.OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	store := snapshot.NewProgramStore(db)
	return store.Save(context.Background(), data, time.Now())
}
