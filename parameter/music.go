package parameter

import "time"

// Tempo and Timing
const (
	DefaultBPM  = 120.0
	MinBPM      = 40.0
	MaxBPM      = 240.0
	BeatsPerBar = 4 // 4/4 time
)

// Gain bounds in decibels
const (
	// GainSilent is effectively inaudible; mixers may treat it as mute
	GainSilent = -80.0

	// GainUnity is full level
	GainUnity = 0.0
)

// Mixer parameter keys, one exposed gain per mixer group
const (
	ParamMenu    = "VolumeMenu"
	ParamMoment1 = "VolumeLead1"
	ParamMoment2 = "VolumeLead2"
	ParamMoment3 = "VolumeLead3"
	ParamAmbient = "VolumeBass"
	ParamFill    = "DrumFill"

	ParamCueCorrect = "CueCorrect"
	ParamCueWrong   = "CueWrong"
)

// Layer names
const (
	LayerMenu    = "menu"
	LayerMoment1 = "moment1"
	LayerMoment2 = "moment2"
	LayerMoment3 = "moment3"
	LayerAmbient = "ambient"
	LayerFill    = "fill"

	LayerCueCorrect = "correct"
	LayerCueWrong   = "wrong"
)

// Fade durations: menu -> gameplay
const (
	FadeOutMenu   = 2 * time.Second
	FadeInMoment1 = 1 * time.Second
	FadeInAmbient = 1500 * time.Millisecond
)

// Fade durations: moment 1 -> moment 2 (bar aligned, triggered by hard mode)
const (
	FadeOut12 = 3 * time.Second
	FadeIn12  = 500 * time.Millisecond
)

// Fade durations: moment 2 -> moment 3 (after drum fill)
const (
	FadeOut23 = 2 * time.Second
	FadeIn23  = 1 * time.Second
)

// Drum fill cue
const (
	// FillAtBeat is the beat within the bar at which the fill starts (1-based)
	FillAtBeat = 3

	// FillHoldBeats is the beats waited after the fill before the crossfade
	FillHoldBeats = 5
)
