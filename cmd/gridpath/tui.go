package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/config"
	"github.com/katalvlaran/gridpath/internal/metrics"
	"github.com/katalvlaran/gridpath/internal/render"
	"github.com/katalvlaran/gridpath/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var (
		gf          gridFlags
		empty       bool
		steps       int
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit a grid and watch the search in the terminal",
		Long: `Tui opens an interactive editor. Move with the arrows or hjkl; enter
places the start, then the end, then barriers; x erases; space or s runs the
search; c clears the board; q quits and cancels a running search.

Log records go to stderr; redirect it (2>tui.log) when using --log-level debug.

` + layoutGlyphs,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if err := gf.apply(cmd, &cfg); err != nil {
				return err
			}
			var (
				g   *grid.Grid
				err error
			)
			if empty && gf.layout == "" {
				g, err = grid.Build(cfg.Grid.Rows, cfg.Grid.Width)
			} else {
				g, err = gf.load(cmd, cfg)
			}
			if err != nil {
				return err
			}

			var rec *metrics.Recorder
			if showMetrics {
				rec = metrics.NewRecorder()
			}
			model := tui.New(g, render.New(os.Stdout), editorConfig(cfg, a.logger, rec, steps))
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return reportEditor(cmd.OutOrStdout(), final, rec)
		},
	}
	gf.register(cmd)
	cmd.Flags().BoolVar(&empty, "empty", true, "start from an empty board unless --layout is given")
	cmd.Flags().IntVar(&steps, "steps-per-frame", 1, "search steps drawn per animation frame")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print Prometheus metrics of the session's searches on exit")
	return cmd
}

// editorConfig maps the merged configuration onto the editor. rec may be nil.
func editorConfig(cfg config.Config, logger *slog.Logger, rec *metrics.Recorder, steps int) tui.Config {
	return tui.Config{
		Delay:         cfg.Animate.Delay,
		StepsPerFrame: steps,
		MaxExpansions: cfg.Search.MaxExpansions,
		Logger:        logger,
		Metrics:       rec,
	}
}

// reportEditor prints the stats of the editor's last search once the alt
// screen is gone, followed by the metrics text when rec is set.
func reportEditor(out io.Writer, final tea.Model, rec *metrics.Recorder) error {
	if m, ok := final.(tui.Model); ok {
		if res, ok := m.LastResult(); ok {
			printStats(out, res)
		}
	}
	if rec == nil {
		return nil
	}
	fmt.Fprintln(out)
	return rec.WriteText(out)
}
