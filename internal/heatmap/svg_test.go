package heatmap

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSVG(t *testing.T) {
	grids := NewGrids(2013, 2013, 12)
	idx := Index{"2013-03-15": {{Date: "2013-03-15", Commits: 12}}}
	Bind(grids, idx, NewQuantizer(7, 30))

	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, grids, 12))
	out := buf.String()

	assert.Equal(t, 365, strings.Count(out, `class="day`))
	assert.Equal(t, 12, strings.Count(out, `class="month"`))
	assert.Contains(t, out, `<title>2013-03-15: 12</title>`)
	assert.Contains(t, out, `class="day q2"`)
	assert.Contains(t, out, `>2013</text>`)
	assert.Contains(t, out, fmt.Sprintf(`height="%d"`, SVGHeight(1, 12)))
}

func TestRenderSVGStacksYears(t *testing.T) {
	grids := NewGrids(2011, 2015, 12)

	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, grids, 12))
	out := buf.String()

	// 4 × 365 + 366 day cells, 12 month outlines per year.
	assert.Equal(t, 1826, strings.Count(out, `class="day`))
	assert.Equal(t, 60, strings.Count(out, `class="month"`))
	for year := 2011; year <= 2015; year++ {
		assert.Contains(t, out, fmt.Sprintf(">%d</text>", year))
	}
}

func TestRenderPageFixesContainerHeight(t *testing.T) {
	grids := NewGrids(2011, 2015, 12)

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, grids, 12))
	out := buf.String()

	assert.Contains(t, out, fmt.Sprintf(`<div id="heatmap" style="height: %dpx">`, SVGHeight(5, 12)))
	assert.Contains(t, out, "<svg ")
	assert.Contains(t, out, "</html>")
}

func TestSVGHeightStable(t *testing.T) {
	assert.Equal(t, SVGHeight(5, 12), SVGHeight(5, 12))
	assert.Greater(t, SVGHeight(5, 12), SVGHeight(1, 12))
}
