// Package cli wires configuration, logging and the terminal UI into the
// footprint command.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/greendilt/footprint/internal/config"
	"github.com/greendilt/footprint/internal/logging"
	"github.com/greendilt/footprint/internal/session"
	"github.com/greendilt/footprint/internal/stats"
	"github.com/greendilt/footprint/internal/tui"
	"github.com/greendilt/footprint/internal/wizard"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the footprint questionnaire.
func NewRootCmd(ver string) *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:     "footprint",
		Short:   "Estimate your yearly digital carbon footprint",
		Long: "An interactive questionnaire that estimates the CO2e footprint of\n" +
			"your devices, e-waste, digital activities and AI usage, and compares\n" +
			"it with the average for your role.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			level := cfg.Logging.Level
			if debug {
				level = zerolog.LevelDebugValue
			}
			logger := logging.NewStderr(level)

			if !isTerminal(os.Stdout) {
				return fmt.Errorf("footprint needs an interactive terminal")
			}

			return runWizard(cfg, logger)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}

// runWizard assembles the collaborators and hands control to Bubble Tea.
func runWizard(cfg *config.Config, logger zerolog.Logger) error {
	client := stats.New(
		cfg.Stats.URL,
		cfg.Stats.SubmitURL,
		cfg.Stats.Timeout(),
		logging.ComponentLogger(logger, "stats"),
	)

	sess := session.New()
	machine := wizard.New(sess, client, logging.ComponentLogger(logger, "wizard"))
	model := tui.New(machine, client, logging.ComponentLogger(logger, "tui"))

	logger.Debug().Str("session", sess.ID).Msg("starting questionnaire")

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
