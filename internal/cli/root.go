// Package cli provides the command-line interface for dvlayout.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xonecas/dvlayout/internal/config"
	"github.com/xonecas/dvlayout/internal/logging"
	"github.com/xonecas/dvlayout/internal/report"
	"github.com/xonecas/dvlayout/internal/store"
	"github.com/xonecas/dvlayout/internal/tui"
)

// Version information (set at build time).
var Version = "0.1.0"

// app holds what every command shares after flag parsing.
type app struct {
	cfgFile  string
	dbPath   string
	reportID string

	cfg *config.Config
	logs io.Closer
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "dvlayout",
		Short: "Drag-to-resize layout editor for DataViz Studio reports",
		Long: `dvlayout opens a report in the terminal. Drag a section's right border
with the mouse to resize it; widths snap to 25, 50, 75 or 100 percent and are
saved when the button is released.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.logs != nil {
				return a.logs.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEditor(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (TOML)")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "report database (default: ~/.config/dvlayout/dvlayout.db)")
	rootCmd.Flags().StringVar(&a.reportID, "report", "", "report ID to open (default: most recently edited)")

	rootCmd.AddCommand(newSeedCommand(a))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Store.Path = a.dbPath
	}
	a.cfg = cfg

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	a.logs = closer
	return nil
}

// openStore opens the configured database. The default location's
// directory is created on first use.
func (a *app) openStore() (*store.Store, error) {
	if a.cfg.Store.Path == "" {
		if _, err := config.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	path, err := a.cfg.Store.PathOrDefault()
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

// loadReport picks the report to edit: the --report ID, else the latest,
// else a freshly seeded demo.
func (a *app) loadReport(ctx context.Context, s *store.Store) (*report.Report, error) {
	if a.reportID != "" {
		id, err := uuid.Parse(a.reportID)
		if err != nil {
			return nil, fmt.Errorf("invalid report ID %q: %w", a.reportID, err)
		}
		return s.LoadReport(ctx, id)
	}

	rep, err := s.LatestReport(ctx)
	if errors.Is(err, store.ErrNotFound) {
		log.Info().Msg("store empty, seeding demo report")
		rep = report.Demo()
		err = s.SaveReport(ctx, rep)
	}
	return rep, err
}

func (a *app) runEditor(ctx context.Context) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	rep, err := a.loadReport(ctx, s)
	if err != nil {
		return err
	}

	layout := a.cfg.Layout
	lo, hi := layout.BoundsOrDefault()
	model := tui.New(tui.Options{
		Report:                 rep,
		Store:                  s,
		SnapPoints:             layout.SnapPointsOrDefault(),
		MinWidth:               lo,
		MaxWidth:               hi,
		FallbackContainerWidth: layout.FallbackContainerWidthOrDefault(),
	})

	throttle := time.Duration(layout.MouseThrottleMSOrDefault()) * time.Millisecond
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithFilter(tui.NewMouseFilter(throttle)),
	)
	log.Info().Str("report", rep.ID.String()).Msg("editor started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
