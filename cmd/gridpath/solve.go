package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/render"
	"github.com/katalvlaran/gridpath/search"
)

// clearScreen homes the cursor and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

func newSolveCmd(a *app) *cobra.Command {
	var (
		gf       gridFlags
		animate  bool
		maxSteps int
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one grid and print the path with statistics",
		Long: `Solve reads a layout (--layout FILE, or - for stdin) or generates a
random grid, runs the search and prints the explored grid followed by the
cells checked, the path length and the time taken.

` + layoutGlyphs,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if err := gf.apply(cmd, &cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("max-expansions") {
				cfg.Search.MaxExpansions = maxSteps
			}
			g, err := gf.load(cmd, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tty := isTerminal(out)
			r := render.Plain()
			if tty {
				r = render.New(out)
			}

			opts := []search.Option{
				search.WithLogger(a.logger),
				search.WithDisplay(cfg.Search.Display),
				search.WithMaxExpansions(cfg.Search.MaxExpansions),
			}
			if animate && tty {
				opts = append(opts, search.WithProgress(func() {
					fmt.Fprint(out, clearScreen, r.Grid(g))
					time.Sleep(cfg.Animate.Delay)
				}))
			} else if animate {
				a.logger.Info("output is not a terminal; animation disabled")
			}

			res, err := search.Search(cmd.Context(), g, opts...)
			if err != nil {
				return err
			}
			if animate && tty {
				fmt.Fprint(out, clearScreen)
			}
			fmt.Fprint(out, r.Grid(g))
			printStats(out, res)
			a.logger.Info("solved",
				slog.String("run", res.RunID),
				slog.String("outcome", res.Outcome.String()),
				slog.Int("rows", g.Rows()),
				slog.Int("cols", g.Cols()),
			)
			return nil
		},
	}
	gf.register(cmd)
	cmd.Flags().BoolVar(&animate, "animate", false, "draw every search step (terminal only)")
	cmd.Flags().IntVar(&maxSteps, "max-expansions", 0, "stop after this many expansions (0: no limit)")
	return cmd
}

// printStats writes the console summary of one search.
func printStats(w io.Writer, res search.Result) {
	fmt.Fprintf(w, "outcome: %s\n", res.Outcome)
	fmt.Fprintf(w, "cells checked: %d\n", res.Expanded)
	if res.Found() {
		fmt.Fprintf(w, "path length: %d\n", res.Length)
	} else if res.Truncated {
		fmt.Fprintln(w, "path length: - (expansion budget reached)")
	} else {
		fmt.Fprintln(w, "path length: - (no path)")
	}
	fmt.Fprintf(w, "time taken: %s\n", res.Elapsed.Round(time.Microsecond))
}

// layoutGlyphs documents the layout format in the help of solve and tui.
var layoutGlyphs = fmt.Sprintf("layout glyphs: %c free  %c barrier  %c start  %c end",
	grid.GlyphDefault, grid.GlyphBarrier, grid.GlyphStart, grid.GlyphEnd)
