package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
	AudioPrecision  = 2 // bytes per sample
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines latency of the speaker backend
	AudioBufferDuration = 100 * time.Millisecond

	// FillSoundDuration is the length of the synthesized drum fill one-shot
	FillSoundDuration = 1500 * time.Millisecond

	// FeedbackSoundDuration is the length of correct/wrong cue tones
	FeedbackSoundDuration = 150 * time.Millisecond
)

// Feedback tone frequencies
const (
	CorrectToneHz = 880.0
	WrongToneHz   = 120.0
)
