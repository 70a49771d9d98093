package timeline

import "github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/climate"

// RenderSettings are the scene parameters the renderer uses for a day.
// They depend only on the weather.
type RenderSettings struct {
	SkyColor         string  `json:"sky_color"`
	FogColor         string  `json:"fog_color"`
	FogDensity       float64 `json:"fog_density"`
	LightIntensity   float64 `json:"light_intensity"`
	AmbientIntensity float64 `json:"ambient_intensity"`
	ParticleDensity  float64 `json:"particle_density"` // rain particles, 0 = none
	CloudOpacity     float64 `json:"cloud_opacity"`
	CloudCount       int     `json:"cloud_count"`
}

var renderTable = map[climate.Weather]RenderSettings{
	climate.Sunny: {
		SkyColor: "#87ceeb", FogColor: "#d6ecf5", FogDensity: 0.002,
		LightIntensity: 1.2, AmbientIntensity: 0.6,
		CloudOpacity: 0.3, CloudCount: 3,
	},
	climate.PartlyCloudy: {
		SkyColor: "#9cc5dd", FogColor: "#cfdde6", FogDensity: 0.004,
		LightIntensity: 1.0, AmbientIntensity: 0.5,
		CloudOpacity: 0.55, CloudCount: 8,
	},
	climate.Cloudy: {
		SkyColor: "#a9b4bd", FogColor: "#b8c0c6", FogDensity: 0.007,
		LightIntensity: 0.7, AmbientIntensity: 0.45,
		CloudOpacity: 0.8, CloudCount: 15,
	},
	climate.Rainy: {
		SkyColor: "#6f7c86", FogColor: "#8a949b", FogDensity: 0.012,
		LightIntensity: 0.5, AmbientIntensity: 0.35, ParticleDensity: 0.6,
		CloudOpacity: 0.9, CloudCount: 20,
	},
	climate.Stormy: {
		SkyColor: "#3e4850", FogColor: "#5a6369", FogDensity: 0.02,
		LightIntensity: 0.3, AmbientIntensity: 0.25, ParticleDensity: 1.0,
		CloudOpacity: 1.0, CloudCount: 28,
	},
}

// RenderFor returns the render bundle for w; unknown weather renders as cloudy.
func RenderFor(w climate.Weather) RenderSettings {
	if r, ok := renderTable[w]; ok {
		return r
	}
	return renderTable[climate.Cloudy]
}
