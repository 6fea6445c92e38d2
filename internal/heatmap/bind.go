package heatmap

import "fmt"

// Bind annotates laid-out cells with the loaded data: one pass over every
// cell of every year. Cells whose date key is present get the intensity
// bucket of the first row sharing that key and a "<date>: <count>" tooltip;
// absent cells keep bucket 0 and the plain date tooltip set at layout time.
func Bind(grids []*YearGrid, idx Index, q Quantizer) {
	for _, g := range grids {
		for _, cell := range g.Cells {
			rows, ok := idx[cell.Key()]
			if !ok || len(rows) == 0 {
				continue
			}
			first := rows[0]
			cell.Bucket = q.Bucket(float64(first.Commits))
			cell.Tooltip = fmt.Sprintf("%s: %d", cell.Key(), first.Commits)
		}
	}
}
