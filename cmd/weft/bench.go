package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/weft-ui/weft/el"
	"github.com/weft-ui/weft/pkg/render"
	"github.com/weft-ui/weft/pkg/weft"
)

func benchCmd() *cobra.Command {
	var (
		flushes int
		rows    int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run synthetic flush benchmarks",
		Long: `Mount a synthetic table component and drive repeated state
changes through the scheduler, reporting flush throughput.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, bump := benchTable(rows)

			container := render.NewStringContainer()
			h := weft.Render(comp.Call(nil), container)
			defer h.Unmount()

			start := time.Now()
			for i := 0; i < flushes; i++ {
				bump(i)
				h.Flush()
			}
			elapsed := time.Since(start)

			success("%d flushes over %d rows in %s", flushes, rows, elapsed.Round(time.Microsecond))
			info("%.0f flushes/sec", float64(flushes)/elapsed.Seconds())
			info("%d live instances", h.Scheduler().Live())
			return nil
		},
	}

	cmd.Flags().IntVarP(&flushes, "flushes", "n", 1000, "number of flushes to drive")
	cmd.Flags().IntVarP(&rows, "rows", "r", 100, "rows in the synthetic table")

	return cmd
}

// benchTable builds a table of row components and returns a function that
// mutates one row's state per call.
func benchTable(rows int) (*el.Component, func(i int)) {
	setters := make([]func(int), rows)

	row := el.WithHooks(func(ctx *el.Ctx, props el.Props) *el.VNode {
		idx := props["idx"].(int)
		n, set := el.UseState(ctx, 0)
		setters[idx] = set
		return el.Tr(el.Td(el.Textf("row %d", idx)), el.Td(el.Textf("%d", n)))
	})

	table := el.WithHooks(func(ctx *el.Ctx, _ el.Props) *el.VNode {
		children := make([]*el.VNode, rows)
		for i := 0; i < rows; i++ {
			children[i] = row.Keyed(fmt.Sprintf("r%d", i), el.Props{"idx": i})
		}
		return el.Table(el.Tbody(children))
	})

	bump := func(i int) {
		setters[i%rows](i)
	}
	return table, bump
}
