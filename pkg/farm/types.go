package farm

import (
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/climate"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/geo"
)

// Spec is the top-level description of a simulated field and season.
type Spec struct {
	Name     string             `yaml:"name" json:"name"`
	Location climate.Location   `yaml:"location" json:"location"`
	Field    FieldDef           `yaml:"field" json:"field"`
	Crop     CropDef            `yaml:"crop" json:"crop"`
	Season   SeasonDef          `yaml:"season" json:"season"`
	Playback PlaybackDef        `yaml:"playback" json:"playback"`
	Products []ScheduledProduct `yaml:"products" json:"products"`
}

// FieldDef is the field outline. Boundary takes geographic vertices;
// Points takes vertices already in metres and wins when both are set.
type FieldDef struct {
	Boundary []geo.LatLng  `yaml:"boundary" json:"boundary,omitempty"`
	Points   []geo.Point2D `yaml:"points" json:"points,omitempty"`
	Hectares float64       `yaml:"hectares" json:"hectares"`
	Seed     int64         `yaml:"seed" json:"seed"`
}

type CropDef struct {
	Type    string  `yaml:"type" json:"type"`
	Density float64 `yaml:"density" json:"density"` // percent of nominal
}

type SeasonDef struct {
	StartDate string `yaml:"start_date" json:"start_date"` // YYYY-MM-DD
	Horizon   int    `yaml:"horizon" json:"horizon"`
}

type PlaybackDef struct {
	BaseInterval string  `yaml:"base_interval" json:"base_interval"` // time.ParseDuration
	Speed        float64 `yaml:"speed" json:"speed"`
}

// ScheduledProduct applies a catalog product on a given day. Increase, when
// set, overrides the catalog estimate.
type ScheduledProduct struct {
	Product  string   `yaml:"product" json:"product"`
	Day      int      `yaml:"day" json:"day"`
	Increase *float64 `yaml:"increase,omitempty" json:"increase,omitempty"`
}
