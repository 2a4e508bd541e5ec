package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/config"
	"github.com/katalvlaran/gridpath/internal/metrics"
	"github.com/katalvlaran/gridpath/search"
)

// errMismatch reports a search whose answer disagrees with the BFS flood.
var errMismatch = errors.New("bench: search disagrees with breadth-first distances")

// benchSummary aggregates one bench run.
type benchSummary struct {
	grids    int
	found    atomic.Int64
	notFound atomic.Int64
	expanded atomic.Int64
	elapsed  time.Duration
}

func newBenchCmd(a *app) *cobra.Command {
	var (
		grids, workers, rows int
		density              float64
		seed                 int64
		showMetrics          bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Solve many random grids concurrently and check every answer",
		Long: `Bench generates random grids from consecutive seeds, solves them on a
worker pool and checks each result against a breadth-first flood from the
start cell. Any disagreement fails the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("grids") {
				cfg.Bench.Grids = grids
			}
			if flags.Changed("workers") {
				cfg.Bench.Workers = workers
			}
			if flags.Changed("rows") {
				cfg.Grid.Rows = rows
			}
			if flags.Changed("density") {
				cfg.Grid.Density = density
			}
			if flags.Changed("seed") {
				cfg.Grid.Seed = seed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Grid.Rows < 2 {
				return fmt.Errorf("%w: bench needs at least 2 rows", config.ErrInvalid)
			}

			rec := metrics.NewRecorder()
			sum, err := runBench(cmd.Context(), cfg, rec, a.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "grids: %d (workers %d, %d×%d, density %.2f)\n",
				sum.grids, cfg.Bench.Workers, cfg.Grid.Rows, cfg.Grid.Rows, cfg.Grid.Density)
			fmt.Fprintf(out, "found: %d  not found: %d\n", sum.found.Load(), sum.notFound.Load())
			fmt.Fprintf(out, "mean cells checked: %.1f\n", float64(sum.expanded.Load())/float64(sum.grids))
			fmt.Fprintln(out, "mismatches: 0")
			fmt.Fprintf(out, "time taken: %s\n", sum.elapsed.Round(time.Millisecond))
			if showMetrics {
				fmt.Fprintln(out)
				return rec.WriteText(out)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&grids, "grids", 0, "number of grids (default from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent solvers (default from config)")
	cmd.Flags().IntVar(&rows, "rows", 0, "rows of each grid (default from config)")
	cmd.Flags().Float64Var(&density, "density", 0, "barrier density (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed of the first grid (default from config)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print Prometheus metrics after the summary")
	return cmd
}

// runBench solves cfg.Bench.Grids grids on a bounded worker pool. Each grid
// is owned by exactly one goroutine. The first failure cancels the rest.
func runBench(ctx context.Context, cfg config.Config, rec *metrics.Recorder, logger *slog.Logger) (*benchSummary, error) {
	sum := &benchSummary{grids: cfg.Bench.Grids}
	began := time.Now()

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Bench.Workers)
	for i := 0; i < cfg.Bench.Grids; i++ {
		seed := cfg.Grid.Seed + int64(i)
		eg.Go(func() error {
			res, err := solveChecked(gctx, cfg, seed, logger)
			if err != nil {
				return err
			}
			rec.Observe(res)
			sum.expanded.Add(int64(res.Expanded))
			if res.Found() {
				sum.found.Add(1)
			} else {
				sum.notFound.Add(1)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sum.elapsed = time.Since(began)
	return sum, nil
}

// solveChecked solves the grid for seed and compares the result with a
// breadth-first flood from the start cell.
func solveChecked(ctx context.Context, cfg config.Config, seed int64, logger *slog.Logger) (search.Result, error) {
	g, err := grid.Random(cfg.Grid.Rows, cfg.Grid.Width, cfg.Grid.Density, seed)
	if err != nil {
		return search.Result{}, err
	}
	res, err := search.Search(ctx, g,
		search.WithLogger(logger),
		search.WithDisplay(false),
	)
	if err != nil {
		return search.Result{}, err
	}
	if res.Outcome == search.Cancelled {
		return res, ctx.Err()
	}

	dist, err := search.Distances(g, g.Start())
	if err != nil {
		return search.Result{}, err
	}
	want := dist.To(g.End())
	switch {
	case res.Found() && res.Cost != want:
		return res, fmt.Errorf("%w: seed %d cost %d, flood %d", errMismatch, seed, res.Cost, want)
	case !res.Found() && want != search.Unreachable:
		return res, fmt.Errorf("%w: seed %d no path, flood %d", errMismatch, seed, want)
	}
	return res, nil
}
