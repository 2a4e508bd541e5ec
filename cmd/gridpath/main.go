// Command gridpath solves, edits and benchmarks shortest paths on grids.
//
//	gridpath solve --rows 30 --density 0.3 --seed 7
//	gridpath solve --layout maze.txt --animate
//	gridpath tui
//	gridpath bench --grids 500 --workers 8 --metrics
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "gridpath:", err)
		os.Exit(1)
	}
}
