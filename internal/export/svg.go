package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	chartWidth  = 960
	chartHeight = 420
	marginLeft  = 48
	marginTop   = 28
	marginRight = 24
	marginBot   = 36
)

// WriteEquitySVG renders the strategy equity curve against the buy-and-hold
// benchmark as a two-line SVG chart and writes it to path.
func WriteEquitySVG(path, title string, dates []time.Time, strategy, hold []float64) error {
	if len(strategy) == 0 || len(strategy) != len(hold) || len(dates) != len(strategy) {
		return fmt.Errorf("svg export: misaligned series (dates=%d strategy=%d hold=%d)",
			len(dates), len(strategy), len(hold))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lo, hi := strategy[0], strategy[0]
	for _, series := range [][]float64{strategy, hold} {
		for _, v := range series {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	plotW := float64(chartWidth - marginLeft - marginRight)
	plotH := float64(chartHeight - marginTop - marginBot)
	span := float64(len(strategy) - 1)
	if span == 0 {
		span = 1
	}
	sx := plotW / span
	sy := plotH / (hi - lo + 1e-9)

	var b bytes.Buffer
	fmt.Fprintf(&b, "<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d' viewBox='0 0 %d %d'>",
		chartWidth, chartHeight, chartWidth, chartHeight)
	b.WriteString("<rect width='100%' height='100%' fill='#ffffff'/>")
	fmt.Fprintf(&b, "<g transform='translate(%d,%d)'>", marginLeft, marginTop)

	// Axes.
	fmt.Fprintf(&b, "<line x1='0' y1='0' x2='0' y2='%.0f' stroke='#cccccc'/>", plotH)
	fmt.Fprintf(&b, "<line x1='0' y1='%.0f' x2='%.0f' y2='%.0f' stroke='#cccccc'/>", plotH, plotW, plotH)

	// Growth-of-$1 baseline.
	if lo <= 1 && 1 <= hi {
		y := plotH - (1-lo)*sy
		fmt.Fprintf(&b, "<line x1='0' y1='%.2f' x2='%.0f' y2='%.2f' stroke='#eeeeee' stroke-dasharray='4 4'/>", y, plotW, y)
	}

	writePolyline(&b, hold, lo, sx, sy, plotH, "#999999")
	writePolyline(&b, strategy, lo, sx, sy, plotH, "#1f77b4")

	b.WriteString("</g>")

	// Title and legend.
	fmt.Fprintf(&b, "<text x='%d' y='18' fill='#333333' font-family='sans-serif' font-size='14'>%s</text>", marginLeft, title)
	fmt.Fprintf(&b, "<text x='%d' y='%d' fill='#1f77b4' font-family='sans-serif' font-size='12'>Strategy</text>",
		marginLeft, chartHeight-12)
	fmt.Fprintf(&b, "<text x='%d' y='%d' fill='#999999' font-family='sans-serif' font-size='12'>Buy &amp; Hold</text>",
		marginLeft+80, chartHeight-12)
	fmt.Fprintf(&b, "<text x='%d' y='%d' fill='#666666' font-family='sans-serif' font-size='11'>%s to %s</text>",
		chartWidth-220, chartHeight-12,
		dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02"))

	b.WriteString("</svg>")

	return os.WriteFile(path, b.Bytes(), 0o644)
}

// writePolyline appends one equity series as an SVG polyline.
func writePolyline(b *bytes.Buffer, series []float64, lo, sx, sy, plotH float64, colour string) {
	fmt.Fprintf(b, "<polyline fill='none' stroke='%s' stroke-width='1.5' points='", colour)
	for i, v := range series {
		x := float64(i) * sx
		y := plotH - (v-lo)*sy
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "%.2f,%.2f", x, y)
	}
	b.WriteString("'/>")
}
