package view

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
)

// PostProcessSettings is the subset of screen-space post-process parameters that
// camera effects are allowed to drive. Zero means "no contribution".
type PostProcessSettings struct {
	BloomIntensity      float32 `yaml:"bloom_intensity"`
	VignetteIntensity   float32 `yaml:"vignette_intensity"`
	Saturation          float32 `yaml:"saturation"`
	Contrast            float32 `yaml:"contrast"`
	ChromaticAberration float32 `yaml:"chromatic_aberration"`
	FocalDistance       float32 `yaml:"focal_distance"`
	ExposureBias        float32 `yaml:"exposure_bias"`
}

// Blend interpolates every parameter from s toward other by weight.
//
// Parameters:
//   - other: the settings at weight 1
//   - weight: interpolation factor
//
// Returns:
//   - PostProcessSettings: the blended settings
func (s PostProcessSettings) Blend(other PostProcessSettings, weight float32) PostProcessSettings {
	return PostProcessSettings{
		BloomIntensity:      common.Lerp(s.BloomIntensity, other.BloomIntensity, weight),
		VignetteIntensity:   common.Lerp(s.VignetteIntensity, other.VignetteIntensity, weight),
		Saturation:          common.Lerp(s.Saturation, other.Saturation, weight),
		Contrast:            common.Lerp(s.Contrast, other.Contrast, weight),
		ChromaticAberration: common.Lerp(s.ChromaticAberration, other.ChromaticAberration, weight),
		FocalDistance:       common.Lerp(s.FocalDistance, other.FocalDistance, weight),
		ExposureBias:        common.Lerp(s.ExposureBias, other.ExposureBias, weight),
	}
}
