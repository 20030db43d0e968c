// Package tts derives client-side speech-synthesis parameters for
// screenplay elements. No audio is produced here.
package tts

import "github.com/nikhilbhutani/screenplaybackend/internal/models"

// VoiceType selects the voice category the client should use.
type VoiceType string

const (
	VoiceNarrator VoiceType = "narrator"
	VoiceMale     VoiceType = "male"
	VoiceFemale   VoiceType = "female"
	VoiceNeutral  VoiceType = "neutral"
)

// VoiceParams holds the synthesis tuning values for one element, in the
// units of the Web Speech API (rate and pitch around 1.0).
type VoiceParams struct {
	Rate         float64   `json:"rate"`
	Pitch        float64   `json:"pitch"`
	VoiceType    VoiceType `json:"voiceType"`
	PauseAfterMs int       `json:"pauseAfterMs,omitempty"`
	Volume       float64   `json:"volume,omitempty"`
	Skip         bool      `json:"skip,omitempty"`
}

func defaultVoice() VoiceParams {
	return VoiceParams{Rate: 1.0, Pitch: 1.0, VoiceType: VoiceNarrator}
}

// voiceFor returns the parameters for a non-dialogue element type.
func voiceFor(t models.ElementType) VoiceParams {
	v := defaultVoice()
	switch t {
	case models.SceneHeading:
		v.Rate, v.Pitch, v.PauseAfterMs = 0.9, 0.8, 1000
	case models.Action:
		v.PauseAfterMs = 500
	case models.CharacterCue:
		// the cue only tells us who speaks next
		v.Skip = true
	case models.Dialogue:
		v.Rate, v.PauseAfterMs = 1.1, 300
	case models.Parenthetical:
		v.Rate, v.Pitch, v.Volume, v.PauseAfterMs = 1.2, 1.1, 0.7, 200
	case models.Transition:
		v.Rate, v.Pitch, v.PauseAfterMs = 0.8, 0.7, 1500
	}
	return v
}

// applyGender colours a dialogue voice for the speaker's gender.
func applyGender(v *VoiceParams, gender string) {
	switch gender {
	case models.GenderFemale:
		v.Pitch, v.VoiceType = 1.3, VoiceFemale
	case models.GenderMale:
		v.Pitch, v.VoiceType = 0.8, VoiceMale
	default:
		v.Pitch, v.VoiceType = 1.0, VoiceNeutral
	}
}
