package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/progdeck/progdeck/internal/cli"
	"github.com/progdeck/progdeck/internal/intelligence"
	"github.com/progdeck/progdeck/internal/llm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := newLogger()

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(log)
	}
	client := llm.NewClient(llmCfg, observer)

	app := &cli.App{
		Agent:     intelligence.NewAgentService(client),
		Plans:     intelligence.NewPlanService(client),
		Summaries: intelligence.NewSummaryService(client),
		Log:       log,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger builds the stderr logger; level comes from PROGDECK_LOG_LEVEL
// and defaults to warn so the TUI stays quiet.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if v := os.Getenv("PROGDECK_LOG_LEVEL"); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
