package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/analytics"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	printResults(w, "ERRORS", r.Errors, true)
	printResults(w, "WARNINGS", r.Warnings, true)
	printResults(w, "INFO", r.Info, false)

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResults(w io.Writer, title string, results []validation.Result, detail bool) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", title, len(results))
	for _, res := range results {
		fmt.Fprintf(w, "  [%s] %s\n", res.Level, res.Message)
		if !detail {
			continue
		}
		if res.Path != "" {
			fmt.Fprintf(w, "    -> %s = %v\n", res.Path, res.ActualValue)
		}
		if res.Expected != "" {
			fmt.Fprintf(w, "    expected: %s\n", res.Expected)
		}
		for _, s := range res.Suggestions {
			fmt.Fprintf(w, "    * %s\n", s)
		}
	}
	fmt.Fprintln(w)
}

func printAnalysis(w io.Writer, p *pass.Pass, a *analytics.Analysis) {
	title := fmt.Sprintf("%s (%s)", p.Name, p.ID)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(title))))
	fmt.Fprintln(w)

	s := a.Summary
	fmt.Fprintf(w, "  Distance:          %s\n", formatKm(s.TotalDistanceKm))
	fmt.Fprintf(w, "  Elevation:         %.0f m -> %.0f m (min %.0f, max %.0f)\n",
		s.StartElevationM, s.EndElevationM, s.MinElevationM, s.MaxElevationM)
	fmt.Fprintf(w, "  Gain / loss:       +%.0f m / -%.0f m\n", s.TotalElevationGainM, s.TotalElevationLossM)
	fmt.Fprintf(w, "  Average gradient:  %.1f%%\n", s.AverageGradient)
	fmt.Fprintf(w, "  Max gradient:      %.1f%% over %d segments\n", s.MaxGradient, s.SegmentCount)
	if i := profile.Steepest(a.Segments); i >= 0 {
		seg := a.Segments[i]
		fmt.Fprintf(w, "  Steepest segment:  km %.2f - %.2f, %+.0f m\n",
			seg.StartDistanceKm, seg.EndDistanceKm, seg.ElevationDeltaM())
	}
	fmt.Fprintf(w, "  Difficulty score:  %d/100 (%s)\n", a.DifficultyScore.Score, a.DifficultyScore.Category)
	fmt.Fprintf(w, "  UCI category:      %s\n", a.UCIComparison.Category)
	fmt.Fprintf(w, "                     %s\n", a.UCIComparison.Description)
	fmt.Fprintln(w)

	printBucketTable(w, a.SegmentsByDifficulty)

	if len(a.KeySegments) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Key segments")
		fmt.Fprintln(w, "------------")
		for _, k := range a.KeySegments {
			fmt.Fprintf(w, "  %6.2f - %6.2f km  %5.1f%% avg  %5.1f%% max  +%4.0f m  %s\n",
				k.StartDistanceKm, k.EndDistanceKm, k.AvgGradient, k.MaxGradient, k.ElevationGainM, k.Type)
		}
	}
}

func printBucketTable(w io.Writer, buckets []analytics.Bucket) {
	fmt.Fprintf(w, "%-16s %9s %11s %9s %9s\n", "Difficulty", "Segments", "Length", "% count", "% length")
	fmt.Fprintf(w, "%-16s %9s %11s %9s %9s\n",
		"----------------", "---------", "-----------", "---------", "---------")
	for _, b := range buckets {
		fmt.Fprintf(w, "%-16s %9d %11s %8.1f%% %8.1f%%\n",
			b.Label, len(b.Segments), formatKm(b.TotalLengthKm), b.Percentage, b.LengthPercentage)
	}
}

func formatKm(v float64) string {
	if v < 1 {
		return fmt.Sprintf("%.0f m", v*1000)
	}
	return fmt.Sprintf("%.2f km", v)
}
