package handlers

import "github.com/nikhilbhutani/screenplaybackend/internal/models"

// Request bodies use pointers so a missing field can be told apart from an
// empty one.

type elementRequest struct {
	Type *string `json:"type" validate:"required"`
	Text *string `json:"text" validate:"required"`
}

type characterRequest struct {
	Name    *string `json:"name" validate:"required"`
	Gender  string  `json:"gender"`
	Age     string  `json:"age"`
	VoiceID string  `json:"voiceId"`
}

type sceneRequest struct {
	ID      *int    `json:"id" validate:"required"`
	Heading *string `json:"heading" validate:"required"`
	Content string  `json:"content"`
}

type exportRequest struct {
	Title    *string          `json:"title" validate:"required"`
	Elements []elementRequest `json:"elements" validate:"required,dive"`
}

type ttsRequest struct {
	Title      *string            `json:"title" validate:"required"`
	Elements   []elementRequest   `json:"elements" validate:"required,dive"`
	Characters []characterRequest `json:"characters" validate:"omitempty,dive"`
}

type sceneBoardRequest struct {
	Title    *string        `json:"title" validate:"required"`
	Scenes   []sceneRequest `json:"scenes" validate:"required,dive"`
	Language string         `json:"language"`
}

const defaultLanguage = "fr"

func toElements(in []elementRequest) []models.Element {
	out := make([]models.Element, len(in))
	for i, el := range in {
		out[i] = models.Element{Type: models.ElementType(*el.Type), Text: *el.Text}
	}
	return out
}

func toCharacters(in []characterRequest) []models.Character {
	out := make([]models.Character, len(in))
	for i, c := range in {
		out[i] = models.Character{Name: *c.Name, Gender: c.Gender, Age: c.Age, VoiceID: c.VoiceID}
	}
	return out
}

func toScenes(in []sceneRequest) []models.Scene {
	out := make([]models.Scene, len(in))
	for i, s := range in {
		out[i] = models.Scene{ID: *s.ID, Heading: *s.Heading, Content: s.Content}
	}
	return out
}

func (r sceneBoardRequest) language() string {
	if r.Language == "" {
		return defaultLanguage
	}
	return r.Language
}
