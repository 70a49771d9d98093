package field

import (
	"sort"
	"strings"
)

// Spacing is the planting pattern of a crop in scene metres at 100% density.
// Values are spread wider than agronomic practice so a full field stays
// renderable.
type Spacing struct {
	Row   float64 `json:"row"`    // distance between rows (X axis)
	InRow float64 `json:"in_row"` // distance between plants within a row (Z axis)
}

// DefaultCrop is used when a crop type has no spacing entry.
const DefaultCrop = "corn"

var cropSpacing = map[string]Spacing{
	"corn":      {Row: 1.5, InRow: 1.0},
	"soybean":   {Row: 1.2, InRow: 0.8},
	"wheat":     {Row: 1.0, InRow: 0.6},
	"cotton":    {Row: 1.6, InRow: 1.0},
	"rice":      {Row: 1.0, InRow: 0.8},
	"sugarcane": {Row: 2.0, InRow: 1.2},
	"coffee":    {Row: 3.0, InRow: 2.0},
}

// NormalizeCrop lower-cases and trims a crop name.
func NormalizeCrop(crop string) string {
	return strings.ToLower(strings.TrimSpace(crop))
}

// SpacingFor returns the spacing for crop, falling back to DefaultCrop.
func SpacingFor(crop string) Spacing {
	if s, ok := cropSpacing[NormalizeCrop(crop)]; ok {
		return s
	}
	return cropSpacing[DefaultCrop]
}

// KnownCrop reports whether crop has its own spacing entry.
func KnownCrop(crop string) bool {
	_, ok := cropSpacing[NormalizeCrop(crop)]
	return ok
}

// Crops returns the crop names with spacing entries, sorted.
func Crops() []string {
	out := make([]string, 0, len(cropSpacing))
	for c := range cropSpacing {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
