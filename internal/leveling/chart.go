package leveling

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no leaderboard data to chart")

// Chart styling constants.
const (
	// chartWidth is the width of the rendered image.
	chartWidth = 1024
	// chartHeight is the height of the rendered image.
	chartHeight = 512
	// chartBarWidth is the width of each bar.
	chartBarWidth = 60
	// chartBarSpacing keeps ten bars inside the image width.
	chartBarSpacing = 30
	// chartTitleFontSize sets the size of the chart title text.
	chartTitleFontSize = 14.0
	// chartHeadroom leaves space above the tallest bar.
	chartHeadroom = 1.15
)

// barColor matches the default embed accent.
var barColor = drawing.ColorFromHex("5865F2")

// RenderChart draws the given leaderboard entries as a PNG bar chart.
// labels[i] is the display name for entries[i]; missing labels fall back to the user ID.
func RenderChart(entries []Entry, labels []string) (*bytes.Buffer, error) {
	if len(entries) == 0 {
		return nil, ErrNoChartData
	}

	bars := make([]chart.Value, 0, len(entries))
	maxPoints := 1.0

	for i, entry := range entries {
		label := entry.UserID
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}

		value := float64(entry.Points)
		maxPoints = max(maxPoints, value)

		bars = append(bars, chart.Value{
			Label: label,
			Value: value,
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor,
			},
		})
	}

	graph := chart.BarChart{
		Title: "Leaderboard",
		TitleStyle: chart.Style{
			FontSize: chartTitleFontSize,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpacing,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxPoints * chartHeadroom},
		},
		Bars: bars,
	}

	buf := new(bytes.Buffer)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render leaderboard chart: %w", err)
	}

	return buf, nil
}
