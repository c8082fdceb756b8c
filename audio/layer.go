package audio

import (
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/status"
)

// LayerConfig declares a mixer layer
type LayerConfig struct {
	Name    string  `mapstructure:"name" yaml:"name"`
	Param   string  `mapstructure:"param" yaml:"param"`
	Gain    float64 `mapstructure:"gain" yaml:"gain"`         // Initial dB
	OneShot bool    `mapstructure:"one_shot" yaml:"one_shot"` // Triggered, never faded
}

// DefaultLayers is the session soundtrack: menu loop at unity, gameplay layers silent
func DefaultLayers() []LayerConfig {
	return []LayerConfig{
		{Name: parameter.LayerMenu, Param: parameter.ParamMenu, Gain: parameter.GainUnity},
		{Name: parameter.LayerMoment1, Param: parameter.ParamMoment1, Gain: parameter.GainSilent},
		{Name: parameter.LayerMoment2, Param: parameter.ParamMoment2, Gain: parameter.GainSilent},
		{Name: parameter.LayerMoment3, Param: parameter.ParamMoment3, Gain: parameter.GainSilent},
		{Name: parameter.LayerAmbient, Param: parameter.ParamAmbient, Gain: parameter.GainSilent},
		{Name: parameter.LayerFill, Param: parameter.ParamFill, OneShot: true},
		{Name: parameter.LayerCueCorrect, Param: parameter.ParamCueCorrect, OneShot: true},
		{Name: parameter.LayerCueWrong, Param: parameter.ParamCueWrong, OneShot: true},
	}
}

// layer is a continuous loop with a gain in [GainSilent, GainUnity]
type layer struct {
	cfg   LayerConfig
	gain  float64
	owner *crossfade // Transition currently allowed to write the gain
	gauge *status.Gauge
}

// ClampGain limits db to [GainSilent, GainUnity]
func ClampGain(db float64) float64 {
	if db < parameter.GainSilent {
		return parameter.GainSilent
	}
	if db > parameter.GainUnity {
		return parameter.GainUnity
	}
	return db
}
