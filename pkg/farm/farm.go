package farm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/climate"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/geo"
)

// ProjectFile is the file LoadProject looks for.
const ProjectFile = "farm.yaml"

// Defaults applied by Load to fields left empty.
const (
	DefaultCrop     = "corn"
	DefaultDensity  = 100.0
	DefaultHorizon  = 120
	DefaultInterval = time.Second
)

// Load reads a farm spec from a YAML file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading farm file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadProject loads farm.yaml from a project directory.
func LoadProject(projectDir string) (*Spec, error) {
	return Load(filepath.Join(projectDir, ProjectFile))
}

// Parse decodes a farm spec and fills defaults.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing farm YAML: %w", err)
	}
	s.applyDefaults()
	return &s, nil
}

func (s *Spec) applyDefaults() {
	if strings.TrimSpace(s.Crop.Type) == "" {
		s.Crop.Type = DefaultCrop
	}
	if s.Crop.Density == 0 {
		s.Crop.Density = DefaultDensity
	}
	if s.Season.Horizon == 0 {
		s.Season.Horizon = DefaultHorizon
	}
	if s.Playback.Speed == 0 {
		s.Playback.Speed = 1
	}
	if s.Location == (climate.Location{}) && len(s.Field.Boundary) > 0 {
		c := geo.MeanLatLng(s.Field.Boundary)
		s.Location = climate.Location{Lat: c.Lat, Lng: c.Lng}
	}
}

// Polygon returns the field outline in metres. Geographic boundaries are
// projected around their mean vertex. The result may be degenerate; callers
// fall back to the default square.
func (s *Spec) Polygon() geo.Polygon {
	if len(s.Field.Points) > 0 {
		return geo.NewPolygon(s.Field.Points...)
	}
	if len(s.Field.Boundary) > 0 {
		return geo.Project(geo.MeanLatLng(s.Field.Boundary), s.Field.Boundary)
	}
	return geo.Polygon{}
}

// StartDate parses the season start. An empty value means today (UTC).
func (s *Spec) StartDate() (time.Time, error) {
	if s.Season.StartDate == "" {
		return climate.Day(time.Now()), nil
	}
	t, err := time.Parse(time.DateOnly, s.Season.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("season.start_date: %w", err)
	}
	return t, nil
}

// BaseInterval parses the playback interval at speed 1.
func (s *Spec) BaseInterval() (time.Duration, error) {
	if s.Playback.BaseInterval == "" {
		return DefaultInterval, nil
	}
	d, err := time.ParseDuration(s.Playback.BaseInterval)
	if err != nil {
		return 0, fmt.Errorf("playback.base_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("playback.base_interval: must be positive, got %s", d)
	}
	return d, nil
}
