package tts

import (
	"strings"

	"github.com/nikhilbhutani/screenplaybackend/internal/models"
)

// CastMember is what the narrator knows about a character.
type CastMember struct {
	Gender  string
	Age     string
	VoiceID string
}

// Cast maps upper-cased character names to their details. A nil Cast means
// the caller supplied no character table.
type Cast map[string]CastMember

// NewCast indexes characters by upper-cased name. It always returns a
// non-nil Cast, even for an empty list.
func NewCast(characters []models.Character) Cast {
	cast := make(Cast, len(characters))
	for _, c := range characters {
		cast[strings.ToUpper(c.Name)] = CastMember{
			Gender:  c.Gender,
			Age:     c.Age,
			VoiceID: c.VoiceID,
		}
	}
	return cast
}

// Line is an element annotated with how to narrate it.
type Line struct {
	Type      models.ElementType `json:"type"`
	Text      string             `json:"text"`
	Voice     VoiceParams        `json:"voice"`
	Character *string            `json:"character"`
}

// Script is the narration plan for a whole screenplay.
type Script struct {
	Title         string `json:"title"`
	Elements      []Line `json:"elements"`
	TotalElements int    `json:"totalElements"`
}

// Narrator derives voice parameters for screenplay elements.
type Narrator struct {
	guesser *GenderGuesser
}

// NewNarrator returns a Narrator using g for speakers without an explicit
// gender. A nil g falls back to the built-in name lists.
func NewNarrator(g *GenderGuesser) *Narrator {
	if g == nil {
		g = DefaultGenderGuesser()
	}
	return &Narrator{guesser: g}
}

// Prepare walks elements once, in order, and returns one Line per element.
// The result depends on element order: dialogue is voiced for the most
// recent character cue.
func (n *Narrator) Prepare(title string, elements []models.Element, cast Cast) Script {
	state := speakerState{}
	lines := make([]Line, 0, len(elements))

	for _, el := range elements {
		voice := n.voice(el, cast, state)

		if el.Type == models.CharacterCue {
			state = state.cue(el.Text)
		}

		line := Line{Type: el.Type, Text: el.Text, Voice: voice}
		if state.known && (el.Type == models.Dialogue || el.Type == models.Parenthetical) {
			name := state.name
			line.Character = &name
		}
		lines = append(lines, line)
	}

	return Script{
		Title:         title,
		Elements:      lines,
		TotalElements: len(lines),
	}
}

func (n *Narrator) voice(el models.Element, cast Cast, state speakerState) VoiceParams {
	v := voiceFor(el.Type)
	if el.Type != models.Dialogue || state.name == "" || cast == nil {
		return v
	}

	gender := cast[state.name].Gender
	if gender == "" {
		gender = n.guesser.Guess(state.name)
	}
	applyGender(&v, gender)
	return v
}

// speakerState is the accumulator threaded through Prepare.
type speakerState struct {
	name  string
	known bool
}

// cue records a character cue such as "MARIE (V.O.)" as "MARIE".
func (s speakerState) cue(text string) speakerState {
	name := strings.ToUpper(text)
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return speakerState{name: strings.TrimSpace(name), known: true}
}
