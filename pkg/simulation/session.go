// Package simulation assembles a field layout, a growth timeline and a
// playback controller from a farm spec.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/climate"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/farm"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/field"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/playback"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/product"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/timeline"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/validation"
)

// ErrInvalidSpec is returned by New when schema validation fails.
var ErrInvalidSpec = errors.New("invalid farm spec")

// InvalidSpecError carries the failed validation report.
type InvalidSpecError struct {
	Report *validation.Report
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidSpec, e.Report.Summary)
}

func (e *InvalidSpecError) Unwrap() error { return ErrInvalidSpec }

type options struct {
	source    climate.Source
	estimator product.Estimator
	catalog   *product.Catalog
	sched     playback.Scheduler
	onSync    playback.SyncFunc
	interval  time.Duration
}

// Option configures New.
type Option func(*options)

// WithSource replaces the synthetic weather source.
func WithSource(src climate.Source) Option {
	return func(o *options) { o.source = src }
}

// WithCatalog sets the product catalog used for names and, unless
// WithEstimator is also given, for estimates.
func WithCatalog(c *product.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithEstimator sets the growth-rate estimator.
func WithEstimator(e product.Estimator) Option {
	return func(o *options) { o.estimator = e }
}

// WithScheduler sets the playback scheduler.
func WithScheduler(s playback.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithSync registers the render-sync callback.
func WithSync(fn playback.SyncFunc) Option {
	return func(o *options) { o.onSync = fn }
}

// WithBaseInterval overrides the farm file's playback interval.
func WithBaseInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// Session is one running simulation.
type Session struct {
	ID     string
	Spec   *farm.Spec
	Layout *field.Layout

	ctrl      *playback.Controller
	estimator product.Estimator
	catalog   *product.Catalog
	report    *validation.Report
}

// New validates spec, builds the field and the timeline, and applies the
// scheduled products in order.
func New(ctx context.Context, spec *farm.Spec, opts ...Option) (*Session, error) {
	o := options{source: climate.Synthetic{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.catalog == nil {
		o.catalog = product.Default()
	}
	if o.estimator == nil {
		o.estimator = o.catalog
	}

	report := validation.ValidateSchema(spec)
	if !report.Valid {
		return nil, &InvalidSpecError{Report: report}
	}

	layout, geomReport := field.Build(field.Request{
		Boundary: spec.Polygon(),
		Hectares: spec.Field.Hectares,
		Crop:     spec.Crop.Type,
		Density:  spec.Crop.Density,
		Seed:     spec.Field.Seed,
	})
	report.Merge(geomReport)

	start, err := spec.StartDate()
	if err != nil {
		return nil, err
	}
	tl, err := timeline.Build(ctx, layout.Crop, spec.Location, start, spec.Season.Horizon,
		timeline.WithSource(o.source))
	if err != nil {
		return nil, fmt.Errorf("building timeline: %w", err)
	}

	interval := o.interval
	if interval <= 0 {
		if interval, err = spec.BaseInterval(); err != nil {
			return nil, err
		}
	}
	ctrlOpts := []playback.Option{
		playback.WithBaseInterval(interval),
		playback.WithSpeed(spec.Playback.Speed),
		playback.WithSync(o.onSync),
	}
	if o.sched != nil {
		ctrlOpts = append(ctrlOpts, playback.WithScheduler(o.sched))
	}
	ctrl, err := playback.New(tl, ctrlOpts...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.NewString(),
		Spec:      spec,
		Layout:    layout,
		ctrl:      ctrl,
		estimator: o.estimator,
		catalog:   o.catalog,
		report:    report,
	}

	for i, sp := range spec.Products {
		var err error
		if sp.Increase != nil {
			_, err = s.ApplyIncrease(sp.Product, *sp.Increase, sp.Day)
		} else {
			_, err = s.Apply(ctx, sp.Product, sp.Day)
		}
		if err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
	}
	return s, nil
}

// Controller returns the playback controller.
func (s *Session) Controller() *playback.Controller { return s.ctrl }

// Catalog returns the product catalog.
func (s *Session) Catalog() *product.Catalog { return s.catalog }

// Validation returns the schema and geometry findings gathered by New.
func (s *Session) Validation() *validation.Report { return s.report }

// Apply estimates productID for the session's crop and applies it from day on.
func (s *Session) Apply(ctx context.Context, productID string, day int) (playback.Application, error) {
	est, err := s.estimator.Estimate(ctx, productID, s.Layout.Crop)
	if err != nil {
		return playback.Application{}, fmt.Errorf("estimating %s: %w", productID, err)
	}
	return s.ctrl.ApplyProduct(productID, s.productName(productID), est.GrowthRateIncrease, day), nil
}

// ApplyIncrease applies productID with an explicit growth-rate increase,
// bypassing the estimator.
func (s *Session) ApplyIncrease(productID string, increase float64, day int) (playback.Application, error) {
	if productID == "" {
		return playback.Application{}, fmt.Errorf("%w: empty id", product.ErrUnknownProduct)
	}
	return s.ctrl.ApplyProduct(productID, s.productName(productID), increase, day), nil
}

// Remove reverses the application with the given id.
func (s *Session) Remove(applicationID string) (playback.Application, bool) {
	return s.ctrl.RemoveProductByID(applicationID)
}

// Close stops playback.
func (s *Session) Close() {
	s.ctrl.Close()
}

func (s *Session) productName(id string) string {
	if p, ok := s.catalog.Get(id); ok {
		return p.Name
	}
	return id
}
