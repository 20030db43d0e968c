package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

var variablePattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Template is a prompt with {{variable}} placeholders.
type Template struct {
	text string
	vars []string
}

// New parses text and records the variables it references, in order of
// first appearance.
func New(text string) *Template {
	t := &Template{text: text}
	seen := make(map[string]bool)
	for _, m := range variablePattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			t.vars = append(t.vars, m[1])
			seen[m[1]] = true
		}
	}
	return t
}

// Render substitutes every placeholder. Values are inserted verbatim and are
// not themselves expanded. A missing variable is an error.
func (t *Template) Render(vars map[string]string) (string, error) {
	var missing []string
	for _, v := range t.vars {
		if _, ok := vars[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing template variables: %s", strings.Join(missing, ", "))
	}

	return variablePattern.ReplaceAllStringFunc(t.text, func(match string) string {
		return vars[match[2:len(match)-2]]
	}), nil
}

// MustRender is Render for templates whose variables are fixed by the
// caller; it panics on a missing variable.
func (t *Template) MustRender(vars map[string]string) string {
	out, err := t.Render(vars)
	if err != nil {
		panic(err)
	}
	return out
}
