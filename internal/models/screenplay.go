package models

// ElementType is the structural role of a screenplay line.
type ElementType string

const (
	SceneHeading  ElementType = "SCENE_HEADING"
	Action        ElementType = "ACTION"
	CharacterCue  ElementType = "CHARACTER"
	Dialogue      ElementType = "DIALOGUE"
	Parenthetical ElementType = "PARENTHETICAL"
	Transition    ElementType = "TRANSITION"
)

// Element is a single typed line of a screenplay. Document order is the
// order of the slice it lives in.
type Element struct {
	Type ElementType `json:"type"`
	Text string      `json:"text"`
}

// Gender values accepted on a Character.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderNeutral = "neutral"
)

// Character describes a speaking role. Gender, Age and VoiceID are optional.
type Character struct {
	Name    string `json:"name"`
	Gender  string `json:"gender,omitempty"` // male, female, neutral
	Age     string `json:"age,omitempty"`    // young, adult, old
	VoiceID string `json:"voiceId,omitempty"`
}

// Scene is a scene reference sent to the scene board. IDs are assigned by
// the caller and only used to correlate results.
type Scene struct {
	ID      int    `json:"id"`
	Heading string `json:"heading"`
	Content string `json:"content,omitempty"`
}
