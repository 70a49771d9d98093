package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/internal/config"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/internal/server"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/farm"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/field"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/playback"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/product"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/simulation"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/timeline"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/validation"
)

var errInvalid = errors.New("farm spec has validation errors")

// loadAndValidate loads farm.yaml and runs schema validation.
func loadAndValidate(projectPath string) (*farm.Spec, *validation.Report, error) {
	spec, err := farm.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading farm spec: %w", err)
	}
	return spec, validation.ValidateSchema(spec), nil
}

func fieldRequest(spec *farm.Spec) field.Request {
	return field.Request{
		Boundary: spec.Polygon(),
		Hectares: spec.Field.Hectares,
		Crop:     spec.Crop.Type,
		Density:  spec.Crop.Density,
		Seed:     spec.Field.Seed,
	}
}

func loadCatalog(path string) (*product.Catalog, error) {
	if path == "" {
		return product.Default(), nil
	}
	return product.Load(path)
}

// newSession loads the project and builds a session. Validation failures
// are printed to w.
func newSession(ctx context.Context, w io.Writer, projectPath, catalogPath string, opts ...simulation.Option) (*simulation.Session, error) {
	spec, err := farm.LoadProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading farm spec: %w", err)
	}
	return sessionFor(ctx, w, spec, catalogPath, opts...)
}

func sessionFor(ctx context.Context, w io.Writer, spec *farm.Spec, catalogPath string, opts ...simulation.Option) (*simulation.Session, error) {
	catalog, err := loadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	opts = append([]simulation.Option{simulation.WithCatalog(catalog)}, opts...)
	sess, err := simulation.New(ctx, spec, opts...)
	var invalid *simulation.InvalidSpecError
	if errors.As(err, &invalid) {
		printValidationReport(w, invalid.Report)
		return nil, errInvalid
	}
	return sess, err
}

func runValidate(w io.Writer, projectPath string) error {
	spec, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	// Geometry checks need a structurally valid spec.
	if report.Valid {
		_, geomReport := field.Build(fieldRequest(spec))
		report.Merge(geomReport)
	}

	printValidationReport(w, report)
	if !report.Valid {
		return errInvalid
	}
	return nil
}

func runField(w io.Writer, projectPath string, asJSON bool) error {
	spec, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return errInvalid
	}

	layout, geomReport := field.Build(fieldRequest(spec))
	if asJSON {
		return writeJSON(w, layout)
	}
	printLayout(w, layout)
	if len(geomReport.Warnings) > 0 {
		fmt.Fprintln(w)
		printValidationReport(w, geomReport)
	}
	return nil
}

func runTimeline(ctx context.Context, w io.Writer, projectPath, catalogPath string, asJSON bool) error {
	sess, err := newSession(ctx, w, projectPath, catalogPath,
		simulation.WithScheduler(playback.NewManualScheduler()))
	if err != nil {
		return err
	}
	defer sess.Close()

	days := sess.Controller().Days()
	if asJSON {
		return writeJSON(w, days)
	}
	printDays(w, days)
	fmt.Fprintln(w)
	printSummary(w, sess.Controller().Summary())
	return nil
}

// runSimulate plays the season on a manual scheduler, one tick per day, so
// the run takes no wall-clock time.
func runSimulate(ctx context.Context, w io.Writer, projectPath, catalogPath string, speed float64, maxDays int, asJSON bool) error {
	sched := playback.NewManualScheduler()
	sess, err := newSession(ctx, w, projectPath, catalogPath,
		simulation.WithScheduler(sched),
		simulation.WithSync(func(d timeline.Day) {
			log.Printf("[sim] day %3d %s %-13s %5.1fC %3.0f%% gf=%.3f %s",
				d.Index, d.Date.Format(time.DateOnly), d.Weather, d.Temperature, d.Humidity, d.GrowthFactor, d.Stage)
		}))
	if err != nil {
		return err
	}
	defer sess.Close()

	ctrl := sess.Controller()
	if speed <= 0 {
		speed = ctrl.Speed()
	}
	ctrl.Play(speed)
	for n := 0; ctrl.State() == playback.Playing && (maxDays <= 0 || n < maxDays); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sched.Tick()
	}
	ctrl.Pause()

	report := sess.Report()
	if asJSON {
		return writeJSON(w, report)
	}
	printReport(w, report)
	return nil
}

type serveOptions struct {
	project string
	port    int
	envFile string
	catalog string
}

func runServe(ctx context.Context, o serveOptions) error {
	var files []string
	if o.envFile != "" {
		files = append(files, o.envFile)
	}
	cfg := config.Load(files...)
	if o.project == "" {
		o.project = cfg.Project
	}
	if o.port == 0 {
		o.port = cfg.Port
	}
	if o.catalog == "" {
		o.catalog = cfg.Catalog
	}

	spec, err := farm.LoadProject(o.project)
	if err != nil {
		return fmt.Errorf("loading farm spec: %w", err)
	}
	hub := server.NewHub(cfg.AllowedOrigin)
	opts := []simulation.Option{simulation.WithSync(hub.PublishDay)}
	if spec.Playback.BaseInterval == "" {
		opts = append(opts, simulation.WithBaseInterval(cfg.BaseInterval))
	}
	sess, err := sessionFor(ctx, log.Writer(), spec, o.catalog, opts...)
	if err != nil {
		return err
	}

	go hub.Run(ctx)
	srv := server.New(fmt.Sprintf(":%d", o.port), sess, hub)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		sess.Close()
		return err
	case <-ctx.Done():
		log.Printf("[server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
