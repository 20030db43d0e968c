// Package fdx renders screenplay elements as Final Draft XML.
package fdx

import (
	"strings"

	"github.com/nikhilbhutani/screenplaybackend/internal/models"
)

const (
	ContentType = "application/xml"
	Extension   = ".fdx"
)

var paragraphTypes = map[models.ElementType]string{
	models.SceneHeading:  "Scene Heading",
	models.Action:        "Action",
	models.CharacterCue:  "Character",
	models.Dialogue:      "Dialogue",
	models.Parenthetical: "Parenthetical",
	models.Transition:    "Transition",
}

// Ampersand is listed first; Replacer scans once so nothing is escaped twice.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// ParagraphType returns the FDX paragraph type for t. Unknown types are
// written as Action.
func ParagraphType(t models.ElementType) string {
	if name, ok := paragraphTypes[t]; ok {
		return name
	}
	return "Action"
}

// Escape replaces the five XML special characters with their entities.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return xmlEscaper.Replace(text)
}

// Generate builds the FDX document for elements, one Paragraph per element
// in input order.
func Generate(elements []models.Element) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString("\n")
	sb.WriteString(`<FinalDraft DocumentType="Script" Template="No" Version="3">`)
	sb.WriteString("\n<Content>\n")

	for _, el := range elements {
		sb.WriteString(`  <Paragraph Type="`)
		sb.WriteString(ParagraphType(el.Type))
		sb.WriteString("\">\n    <Text>")
		sb.WriteString(Escape(el.Text))
		sb.WriteString("</Text>\n  </Paragraph>\n")
	}

	sb.WriteString("</Content>\n</FinalDraft>")
	return sb.String()
}

// Filename derives the download name for a script title.
func Filename(title string) string {
	return strings.ReplaceAll(title, " ", "_") + Extension
}
