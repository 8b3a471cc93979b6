package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Series is a named run of values drawn as one plot line.
type Series struct {
	Name   string
	Values []float64
}

type valueRange struct {
	min float64
	max float64
}

// dashPattern draws dot x when x%period < on.
type dashPattern struct {
	name   string
	period int
	on     int
}

func (p dashPattern) draws(x int) bool {
	if p.period <= 1 {
		return true
	}
	return x%p.period < p.on
}

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisLabelTop        = "max"
	axisLabelMid        = "mid"
	axisLabelBottom     = "min"
	axisSeparator       = " │ "
	scaleNote           = "Each line is scaled to its own range."
	terminalWidthBackup = 80
)

var dashPatterns = []dashPattern{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var seriesStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#87AF5F")),
}

// PlotSeries writes a Braille line plot of series without color.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, false)
}

// PlotSeriesWithColor writes a Braille line plot, coloring each line when
// forceColor is set or w is a color terminal.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return plotSeries(w, title, series, width, height, forceColor)
}

func plotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = nonEmptySeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(TerminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	scaled := make([]Series, len(series))
	ranges := make([]valueRange, len(series))
	grids := make([][][]uint8, len(series))
	for i, s := range series {
		scaled[i] = Series{Name: s.Name, Values: resampleSeries(s.Values, width)}
		ranges[i] = rangeOf(scaled[i].Values)
		grids[i] = newGrid(height, width)
		drawSeries(grids[i], scaled[i].Values, ranges[i], dashPatterns[i%len(dashPatterns)], height)
	}

	useColor := shouldUseColor(w, forceColor)
	lines := make([]string, 0, height+len(scaled)+4)
	if title != "" {
		lines = append(lines, title)
	}
	lines = append(lines, scaleNote)
	for i, s := range scaled {
		lines = append(lines, fmt.Sprintf("%s: min=%.2f max=%.2f", s.Name, ranges[i].min, ranges[i].max))
	}
	labels := axisLabels(height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", len(axisLabelTop), labels[y], axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := mergeCell(grids, x, y)
			ch := string(brailleRune(mask))
			if useColor && owner >= 0 {
				ch = seriesStyles[owner%len(seriesStyles)].Render(ch)
			}
			row.WriteString(ch)
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, legend(scaled, useColor), "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func drawSeries(grid [][]uint8, values []float64, r valueRange, pattern dashPattern, height int) {
	dots := height * 4
	prevX, prevY := -1, -1
	for x, v := range values {
		px, py := x*2, rowFor(v, r, dots)
		if prevX < 0 {
			if pattern.draws(px) {
				setDot(grid, px, py)
			}
		} else {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				if pattern.draws(dx) {
					setDot(grid, dx, dy)
				}
			})
		}
		prevX, prevY = px, py
	}
}

func nonEmptySeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// PlotWidthFor returns the plot area width that fits totalWidth columns
// once the axis is drawn.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	width := totalWidth - axisWidth
	if width < minPlotWidth {
		return minPlotWidth
	}
	return width
}

// TerminalWidth returns the width of stdout or a fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// ShouldUseColor reports whether w is a terminal that accepts color.
func ShouldUseColor(w io.Writer) bool {
	return shouldUseColor(w, false)
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func axisLabels(height int) []string {
	labels := make([]string, height)
	if height == 0 {
		return labels
	}
	labels[0] = axisLabelTop
	if height > 2 {
		labels[height/2] = axisLabelMid
	}
	if height > 1 {
		labels[height-1] = axisLabelBottom
	}
	return labels
}

func newGrid(height, width int) [][]uint8 {
	grid := make([][]uint8, height)
	for y := range grid {
		grid[y] = make([]uint8, width)
	}
	return grid
}

// mergeCell ORs the dots of every grid at (x, y) and reports the first
// series that drew there, or -1.
func mergeCell(grids [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, grid := range grids {
		if y >= len(grid) || x >= len(grid[y]) || grid[y][x] == 0 {
			continue
		}
		if owner < 0 {
			owner = i
		}
		mask |= grid[y][x]
	}
	return mask, owner
}

// resampleSeries stretches or shrinks values to exactly width points:
// bucket means when shrinking, linear interpolation when stretching.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		last := len(values) - 1
		for i := range out {
			pos := float64(i) * float64(last) / float64(width-1)
			idx := int(math.Floor(pos))
			if idx >= last {
				out[i] = values[last]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// rangeOf returns the min and max of values, widened by one on each side
// when the series is flat so it plots mid-height.
func rangeOf(values []float64) valueRange {
	if len(values) == 0 {
		return valueRange{min: -1, max: 1}
	}
	r := valueRange{min: values[0], max: values[0]}
	for _, v := range values[1:] {
		r.min = math.Min(r.min, v)
		r.max = math.Max(r.max, v)
	}
	if r.max-r.min < 1e-9 {
		r.min--
		r.max++
	}
	return r
}

func rowFor(v float64, r valueRange, dots int) int {
	if dots <= 1 {
		return 0
	}
	pos := (v - r.min) / (r.max - r.min)
	row := int(math.Round((1 - pos) * float64(dots-1)))
	return max(0, min(row, dots-1))
}

func legend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", brailleRune(0x01), s.Name, dashPatterns[i%len(dashPatterns)].name)
		if useColor {
			label = seriesStyles[i%len(seriesStyles)].Render(label)
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// drawLine walks Bresenham's line from (x0, y0) to (x1, y1).
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// setDot sets dot (x, y) in a grid of 2x4-dot Braille cells.
func setDot(grid [][]uint8, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cy, cx := y/4, x/2
	if cy >= len(grid) || cx >= len(grid[cy]) {
		return
	}
	grid[cy][cx] |= brailleBit(x%2, y%4)
}

// Braille dot bits, column-major: left column 1,2,3,7 then right 4,5,6,8.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func brailleBit(col, row int) uint8 {
	return brailleBits[col][row]
}

func brailleRune(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
