package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/config"
)

// app is the state shared by every subcommand: the merged configuration
// and the logger built from it.
type app struct {
	cfgPath  string
	logLevel string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "gridpath",
		Short: "Shortest paths on obstacle grids",
		Long: `gridpath finds shortest 4-connected paths between a start and an end
cell on a grid with barriers, and shows how the search explores it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newSolveCmd(a), newTUICmd(a), newBenchCmd(a))
	return cmd
}

// load reads the configuration file, applies --log-level and builds the
// logger on stderr.
func (a *app) load(stderr io.Writer) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err = cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	a.logger.Debug("configuration loaded", slog.String("path", a.cfgPath), slog.String("level", cfg.Log.Level))
	return nil
}

// gridFlags are the grid-source flags shared by solve and tui.
type gridFlags struct {
	layout  string
	rows    int
	density float64
	seed    int64
}

func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.layout, "layout", "", "ASCII layout file, or - for stdin")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "rows of a generated grid (default from config)")
	cmd.Flags().Float64Var(&f.density, "density", 0, "barrier density of a generated grid (default from config)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed of a generated grid (default from config)")
}

// apply copies the flags the user set over the configuration.
func (f *gridFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("rows") {
		cfg.Grid.Rows = f.rows
	}
	if cmd.Flags().Changed("density") {
		cfg.Grid.Density = f.density
	}
	if cmd.Flags().Changed("seed") {
		cfg.Grid.Seed = f.seed
	}
	return cfg.Validate()
}

// load returns the layout grid when --layout is set, and a random grid
// from the configuration otherwise.
func (f *gridFlags) load(cmd *cobra.Command, cfg config.Config) (*grid.Grid, error) {
	switch f.layout {
	case "":
		return grid.Random(cfg.Grid.Rows, cfg.Grid.Width, cfg.Grid.Density, cfg.Grid.Seed)
	case "-":
		return grid.Parse(cmd.InOrStdin())
	}
	file, err := os.Open(f.layout)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer file.Close()
	return grid.Parse(file)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
