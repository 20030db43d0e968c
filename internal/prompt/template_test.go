package prompt

import (
	"testing"
)

func TestTemplateRender(t *testing.T) {
	tpl := New("Title: {{title}}\n{{body}}")
	got, err := tpl.Render(map[string]string{"title": "Noir", "body": "uses {{title}} literally"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Title: Noir\nuses {{title}} literally"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestTemplateRenderMissing(t *testing.T) {
	tpl := New("{{x}} {{y}}")
	_, err := tpl.Render(map[string]string{"x": "1"})
	if err == nil || err.Error() != "missing template variables: y" {
		t.Errorf("err = %v, want only y reported missing", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustRender should panic on missing variable")
		}
	}()
	tpl.MustRender(nil)
}
