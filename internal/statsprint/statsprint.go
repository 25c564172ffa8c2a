// Package statsprint renders an arena's Stats snapshot as a table, the
// way go-ethereum's console admin namespace renders node stats with
// olekukonko/tablewriter.
package statsprint

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/jpmec/tbd"
)

// Print renders stats as a two-column metric/value table to w.
func Print(w io.Writer, stats tbd.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"metric", "value"})
	table.AppendBulk([][]string{
		{"size", strconv.Itoa(stats.Size)},
		{"size_used", strconv.Itoa(stats.SizeUsed)},
		{"head_size", strconv.Itoa(stats.HeadSize)},
		{"count", strconv.Itoa(stats.Count)},
		{"garbage_count", strconv.Itoa(stats.GarbageCount)},
		{"garbage_size", strconv.Itoa(stats.GarbageSize)},
		{"utilization", strconv.FormatFloat(stats.Utilization*100, 'f', 2, 64) + "%"},
	})
	table.Render()
}
