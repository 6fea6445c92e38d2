package heatmap

import (
	"fmt"
	"io"
	"strings"
)

// gridCols is the widest week span a year can occupy: 53 full column
// indices plus one for a year whose first partial week pushes the final
// days into a 54th column.
const gridCols = 54

// bucketFills are the intensity tier colors, index 0 (no activity) through
// the top tier. Matches the familiar contribution-calendar green ramp.
var bucketFills = []string{
	"#eeeeee", "#d6e685", "#b5d36a", "#8cc665", "#6bb344", "#44a340", "#1e6823",
}

// yearBlockHeight is the pixel height of one year's grid.
func yearBlockHeight(cell int) int {
	return gridRows * cell
}

// yearBlockGap is the vertical space between consecutive year grids.
func yearBlockGap(cell int) int {
	return 2 * cell
}

// SVGWidth returns the total pixel width of the rendered document.
func SVGWidth(cell int) int {
	return 2*cell + gridCols*cell + cell
}

// SVGHeight returns the total pixel height for n stacked year grids. The
// HTML wrapper fixes its container to this value, so it must be stable for
// a given configuration.
func SVGHeight(years, cell int) int {
	return cell + years*(yearBlockHeight(cell)+yearBlockGap(cell))
}

// RenderSVG writes the full heatmap document: one grid per year, stacked
// vertically, each with its day rects, month separators, and year label.
// Tooltips are static <title> elements on each day rect.
func RenderSVG(w io.Writer, grids []*YearGrid, cell int) error {
	var sb strings.Builder

	width := SVGWidth(cell)
	height := SVGHeight(len(grids), cell)

	sb.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" class="commitmap">`+"\n",
		width, height))
	sb.WriteString(styleBlock())

	for i, g := range grids {
		x := 2 * cell
		y := cell + i*(yearBlockHeight(cell)+yearBlockGap(cell))
		sb.WriteString(fmt.Sprintf(`<g transform="translate(%d,%d)">`+"\n", x, y))

		// Rotated year label in the left gutter.
		sb.WriteString(fmt.Sprintf(
			`<text class="year" transform="translate(-8,%d)rotate(-90)">%d</text>`+"\n",
			yearBlockHeight(cell)/2, g.Year))

		for _, c := range g.Cells {
			class := "day"
			if c.Bucket > 0 {
				class = fmt.Sprintf("day q%d", c.Bucket)
			}
			sb.WriteString(fmt.Sprintf(
				`<rect class="%s" width="%d" height="%d" x="%d" y="%d"><title>%s</title></rect>`+"\n",
				class, cell, cell, c.X, c.Y, c.Tooltip))
		}

		for _, m := range g.Months {
			sb.WriteString(fmt.Sprintf(`<path class="month" d="%s"/>`+"\n", m.PathData(cell)))
		}

		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func styleBlock() string {
	var sb strings.Builder
	sb.WriteString("<style>\n")
	sb.WriteString(".commitmap .day { fill: " + bucketFills[0] + "; stroke: #fff; }\n")
	for i := 1; i < len(bucketFills); i++ {
		sb.WriteString(fmt.Sprintf(".commitmap .q%d { fill: %s; }\n", i, bucketFills[i]))
	}
	sb.WriteString(".commitmap .month { fill: none; stroke: #555; stroke-width: 1px; }\n")
	sb.WriteString(".commitmap .year { font: 10px sans-serif; text-anchor: middle; fill: #666; }\n")
	sb.WriteString("</style>\n")
	return sb.String()
}

// RenderPage writes a minimal HTML page embedding the heatmap inline. The
// wrapper div is fixed to the document height for the configured year range.
func RenderPage(w io.Writer, grids []*YearGrid, cell int) error {
	height := SVGHeight(len(grids), cell)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString(`<meta charset="utf-8">` + "\n")
	sb.WriteString("<title>Commit activity</title>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(fmt.Sprintf(`<div id="heatmap" style="height: %dpx">`+"\n", height))
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	if err := RenderSVG(w, grids, cell); err != nil {
		return err
	}

	_, err := io.WriteString(w, "</div>\n</body>\n</html>\n")
	return err
}
