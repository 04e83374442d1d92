package scene2d

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/analytics"
)

// RenderChart writes an HTML line chart of the profile with one series per
// difficulty tier, so each stretch of road is drawn in its tier colour.
func RenderChart(v *Visualization, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: v.Name, Width: "1100px", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    v.Name,
			Subtitle: subtitle(v),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "km", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "m", Min: "dataMin"}),
	)

	for _, t := range analytics.Tiers {
		data := tierSeries(v.Segments, t.Difficulty)
		line.AddSeries(t.Label, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: t.Color, Width: 4}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: t.Color}),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("rendering profile chart: %w", err)
	}
	return nil
}

// tierSeries returns the [km, m] pairs of every segment in tier d. Runs of
// non-adjacent segments are separated by an empty value so the line breaks.
func tierSeries(segments []Segment, d analytics.Difficulty) []opts.LineData {
	var data []opts.LineData
	lastEnd := -1.0
	for _, s := range segments {
		if s.Difficulty != d {
			continue
		}
		if len(data) > 0 && s.StartDistanceKm != lastEnd {
			data = append(data, opts.LineData{Value: "-"})
		}
		if s.StartDistanceKm != lastEnd {
			data = append(data, opts.LineData{Value: []any{s.StartDistanceKm, s.StartElevationM}})
		}
		data = append(data, opts.LineData{Value: []any{s.EndDistanceKm, s.EndElevationM}})
		lastEnd = s.EndDistanceKm
	}
	return data
}

func subtitle(v *Visualization) string {
	return fmt.Sprintf("%.1f km, +%.0f m, %.1f%% avg | score %d (%s) | UCI %s",
		v.Summary.TotalDistanceKm, v.Summary.TotalElevationGainM, v.Summary.AverageGradient,
		v.DifficultyScore.Score, v.DifficultyScore.Category, v.UCI.Category)
}
