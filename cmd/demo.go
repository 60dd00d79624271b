package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/marcus/modals/internal/config"
	"github.com/marcus/modals/internal/logging"
	"github.com/marcus/modals/internal/page"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open the interactive dialog demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("demo needs an interactive terminal")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger, closeLog, err := logging.Open(cfg.Log)
		if err != nil {
			return err
		}
		defer closeLog()
		logger.Info("demo starting", "version", version, "reduced_motion", cfg.UI.ReducedMotion)

		m := page.New(page.Options{
			ReducedMotion: cfg.UI.ReducedMotion,
			DialogWidth:   cfg.UI.DialogWidth,
			Logger:        logger,
		})
		defer m.Close()

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run demo: %w", err)
		}
		return nil
	},
}

// loadConfig reads the stored config and applies --reduced-motion and
// --width when given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getBaseDir())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cfg, cmd.Flags()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with the display flags the user set explicitly.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	var err error
	if flags.Changed("reduced-motion") {
		if cfg.UI.ReducedMotion, err = flags.GetBool("reduced-motion"); err != nil {
			return err
		}
	}
	if flags.Changed("width") {
		if cfg.UI.DialogWidth, err = flags.GetInt("width"); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

func addDisplayFlags(flags *pflag.FlagSet) {
	flags.Bool("reduced-motion", false, "place dialogs without animation")
	flags.Int("width", 0, "dialog width in columns")
}

func init() {
	addDisplayFlags(demoCmd.Flags())
	rootCmd.AddCommand(demoCmd)
}
