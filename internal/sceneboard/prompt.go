package sceneboard

import (
	"fmt"
	"strings"

	"github.com/nikhilbhutani/screenplaybackend/internal/models"
	"github.com/nikhilbhutani/screenplaybackend/internal/prompt"
)

var systemPrompt = prompt.New(`You are an experienced script editor helping a screenwriter structure a screenplay.
{{language}}
Respond with JSON only, no markdown, no code fences, no text before or after the JSON.`)

var analyzePrompt = prompt.New(`Screenplay: "{{title}}"

Analyze each scene below. Return a JSON array with exactly one object per scene, in the same order as given:
[
  {
    "id": <scene id, integer>,
    "summary": "<one or two sentence summary>",
    "characters": ["<names of characters present>"],
    "tone": "<dominant tone in one or two words>",
    "function": "<dramatic function: setup, inciting incident, rising action, turning point, climax, resolution, ...>",
    "time": "<time of day or story time>"
  }
]

Scenes:
{{scenes}}`)

var suggestPrompt = prompt.New(`Screenplay: "{{title}}"

Here is the current scene order (id and heading):
{{scenes}}

Assess the overall structure and return a single JSON object:
{
  "assessment": "<short overall assessment of the structure>",
  "suggestedOrder": [<scene ids in a better order>] or null if the current order works,
  "missingBeats": ["<story beats that seem to be missing>"],
  "pacingNotes": "<notes on rhythm and pacing>"
}`)

// languageInstruction fixes the reply language: French for "fr", English
// for anything else.
func languageInstruction(language string) string {
	if strings.EqualFold(strings.TrimSpace(language), "fr") {
		return "Write every text value in French."
	}
	return "Write every text value in English."
}

func buildSystemPrompt(language string) string {
	return systemPrompt.MustRender(map[string]string{"language": languageInstruction(language)})
}

func buildAnalyzePrompt(title string, scenes []models.Scene) string {
	var sb strings.Builder
	for i, sc := range scenes {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "--- Scene %d ---\nHeading: %s\n", sc.ID, sc.Heading)
		if sc.Content != "" {
			fmt.Fprintf(&sb, "Content:\n%s\n", sc.Content)
		}
	}
	return analyzePrompt.MustRender(map[string]string{"title": title, "scenes": sb.String()})
}

func buildSuggestPrompt(title string, scenes []models.Scene) string {
	var sb strings.Builder
	for _, sc := range scenes {
		fmt.Fprintf(&sb, "%d. %s\n", sc.ID, sc.Heading)
	}
	return suggestPrompt.MustRender(map[string]string{"title": title, "scenes": sb.String()})
}
