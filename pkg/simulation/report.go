package simulation

import (
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/climate"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/field"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/playback"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/timeline"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/validation"
)

// FieldStats summarises a layout without the full mesh and plant list.
type FieldStats struct {
	Crop      string        `json:"crop"`
	AreaHa    float64       `json:"area_ha"`
	Vertices  int           `json:"vertices"`
	Triangles int           `json:"triangles"`
	Plants    int           `json:"plants"`
	Density   float64       `json:"density"`
	Spacing   field.Spacing `json:"spacing"`
}

// Report is the JSON-serialisable state of a session.
type Report struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Location     climate.Location       `json:"location"`
	Field        FieldStats             `json:"field"`
	Timeline     timeline.Summary       `json:"timeline"`
	Playback     playback.Status        `json:"playback"`
	Applications []playback.Application `json:"applications"`
	Validation   *validation.Report     `json:"validation"`
}

// Stats returns the field summary.
func (s *Session) Stats() FieldStats {
	l := s.Layout
	return FieldStats{
		Crop:      l.Crop,
		AreaHa:    l.AreaHa,
		Vertices:  l.Polygon.Len(),
		Triangles: len(l.Triangles),
		Plants:    len(l.Positions),
		Density:   l.Density,
		Spacing:   l.Spacing,
	}
}

// Report snapshots the session.
func (s *Session) Report() Report {
	return Report{
		ID:           s.ID,
		Name:         s.Spec.Name,
		Location:     s.Spec.Location,
		Field:        s.Stats(),
		Timeline:     s.ctrl.Summary(),
		Playback:     s.ctrl.Status(),
		Applications: s.ctrl.Applications(),
		Validation:   s.report,
	}
}
