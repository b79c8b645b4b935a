package chart

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
)

// legendEntry labels one bar of the chart.
type legendEntry struct {
	ID    int
	Label string
	Count int
	Color lipgloss.Color
}

func legendFor(buckets []books.FrequencyBucket) []legendEntry {
	out := make([]legendEntry, len(buckets))
	for i, b := range buckets {
		out[i] = legendEntry{ID: b.ID, Label: b.RangeLabel, Count: b.Count, Color: common.BucketColor(b.ID)}
	}
	return out
}

// Bars renders buckets as a vertical bar chart, one bar per bucket in
// ID order. Bars are numbered by bucket ID so they match the legend.
func Bars(buckets []books.FrequencyBucket, w, h int) string {
	w = max(w, 12)
	h = max(h, 6)

	axisStyle := lipgloss.NewStyle().Foreground(common.ColorBorder)
	labelStyle := lipgloss.NewStyle().Foreground(common.ColorSubtext)
	bc := barchart.New(w, h, barchart.WithStyles(axisStyle, labelStyle))

	data := make([]barchart.BarData, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, barchart.BarData{
			Label: fmt.Sprintf("%d", b.ID),
			Values: []barchart.BarValue{{
				Name:  b.RangeLabel,
				Value: float64(b.Count),
				Style: lipgloss.NewStyle().Foreground(common.BucketColor(b.ID)),
			}},
		})
	}
	bc.PushAll(data)
	bc.Draw()
	return bc.View()
}

// Legend renders one line per bucket with its color, label and count.
func Legend(buckets []books.FrequencyBucket, maxW int) string {
	entries := legendFor(buckets)
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		block := lipgloss.NewStyle().Foreground(e.Color).Render("█")
		lines[i] = block + fmt.Sprintf(" %d. %s (%d)", e.ID, e.Label, e.Count)
	}
	return lipgloss.NewStyle().Width(maxW).Render(strings.Join(lines, "\n"))
}

// ChartWithLegend joins Bars and Legend side by side inside w cells.
func ChartWithLegend(buckets []books.FrequencyBucket, w, h int) string {
	if len(buckets) == 0 {
		return common.ValueStyle.Render("No buckets to chart")
	}
	legendW := max(w/3, 18)
	chartW := max(w-legendW-2, 12)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		Bars(buckets, chartW, h),
		"  ",
		Legend(buckets, legendW),
	)
}

// pieBar renders the tally as one bar split into colored segments
// proportional to each bucket's count.
func pieBar(tally []books.FrequencyBucket, width int) string {
	total := 0
	for _, b := range tally {
		total += b.Count
	}
	if total == 0 || width <= 0 {
		return common.ValueStyle.Render(strings.Repeat("░", max(width, 0)))
	}

	var bar strings.Builder
	remaining := width
	last := -1
	for i, b := range tally {
		if b.Count > 0 {
			last = i
		}
	}
	for i, b := range tally {
		if b.Count == 0 {
			continue
		}
		seg := b.Count * width / total
		if i == last {
			seg = remaining
		}
		seg = min(seg, remaining)
		if seg > 0 {
			style := lipgloss.NewStyle().Foreground(common.BucketColor(b.ID))
			bar.WriteString(style.Render(strings.Repeat("█", seg)))
			remaining -= seg
		}
	}
	return bar.String()
}
