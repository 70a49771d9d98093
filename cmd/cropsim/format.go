package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/field"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/simulation"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/timeline"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, wr := range r.Warnings {
			printResult(w, wr)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, r validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", r.Level, r.Message)
	if r.Path != "" && r.ActualValue != nil {
		fmt.Fprintf(w, "    -> %s = %v\n", r.Path, r.ActualValue)
	}
	if r.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", r.Expected)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printLayout(w io.Writer, l *field.Layout) {
	fmt.Fprintln(w, "FIELD")
	fmt.Fprintf(w, "  Crop:        %s\n", l.Crop)
	fmt.Fprintf(w, "  Area:        %.2f ha\n", l.AreaHa)
	minPt, maxPt := l.Polygon.BoundingBox()
	fmt.Fprintf(w, "  Extent:      %.1f x %.1f m\n", maxPt.X-minPt.X, maxPt.Z-minPt.Z)
	fmt.Fprintf(w, "  Vertices:    %d\n", l.Polygon.Len())
	fmt.Fprintf(w, "  Triangles:   %d\n", len(l.Triangles))
	fmt.Fprintf(w, "  Density:     %.0f%%\n", l.Density)
	fmt.Fprintf(w, "  Spacing:     %.2f m rows, %.2f m in-row\n", l.Spacing.Row, l.Spacing.InRow)
	fmt.Fprintf(w, "  Plants:      %d\n", len(l.Positions))
}

func printDays(w io.Writer, days []timeline.Day) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DAY\tDATE\tWEATHER\tTEMP\tHUMIDITY\tWIND\tGROWTH\tSTAGE\t")
	for _, d := range days {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.0f%%\t%.1f\t%.3f\t%s\t\n",
			d.Index, d.Date.Format(time.DateOnly), d.Weather, d.Temperature, d.Humidity, d.WindSpeed, d.GrowthFactor, d.Stage)
	}
	tw.Flush()
}

func printSummary(w io.Writer, s timeline.Summary) {
	fmt.Fprintln(w, "SEASON")
	fmt.Fprintf(w, "  Crop:            %s (%s climate)\n", s.Crop, s.Model)
	fmt.Fprintf(w, "  Dates:           %s to %s (%d days)\n",
		s.Start.Format(time.DateOnly), s.End.Format(time.DateOnly), s.Days)
	fmt.Fprintf(w, "  Mean growth:     %.3f (climate only %.3f)\n", s.MeanGrowthFactor, s.MeanBaseFactor)
	for _, st := range timeline.Stages {
		fmt.Fprintf(w, "  %-16s %d days\n", string(st)+":", s.StageDays[st])
	}
	fmt.Fprintf(w, "  Peak stage:      %s\n", s.PeakStage)
	if s.FirstMatureDay >= 0 {
		fmt.Fprintf(w, "  First mature:    day %d\n", s.FirstMatureDay)
	} else {
		fmt.Fprintln(w, "  First mature:    never")
	}
}

func printReport(w io.Writer, r simulation.Report) {
	fmt.Fprintf(w, "SESSION %s  %s\n", r.ID, r.Name)
	fmt.Fprintf(w, "  Location:    %.4f, %.4f\n", r.Location.Lat, r.Location.Lng)
	fmt.Fprintf(w, "  Field:       %.2f ha %s, %d plants\n", r.Field.AreaHa, r.Field.Crop, r.Field.Plants)
	fmt.Fprintf(w, "  Playback:    %s at day %d of %d (speed %.1fx)\n",
		r.Playback.State, r.Playback.CurrentDay, r.Playback.TotalDays, r.Playback.Speed)
	fmt.Fprintln(w)
	printSummary(w, r.Timeline)

	if len(r.Applications) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "PRODUCTS (%d):\n", len(r.Applications))
		for _, a := range r.Applications {
			sat := ""
			if a.Saturated {
				sat = " (saturated)"
			}
			fmt.Fprintf(w, "  day %3d  %-20s %+.1f%%%s\n", a.AppliedAtDay, a.ProductName, a.GrowthRateIncrease*100, sat)
		}
	}
}
