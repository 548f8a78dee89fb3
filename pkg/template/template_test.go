package template

import "testing"

func TestRender(t *testing.T) {
	got := Render("## Message\n\n{{text}}", map[string]string{"text": "hello"})
	want := "## Message\n\nhello"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderRepeatedMarker(t *testing.T) {
	got := Render("{{x}} and {{x}}", map[string]string{"x": "twice"})
	if got != "twice and twice" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderUnknownMarkerPassesThrough(t *testing.T) {
	// An unresolved marker must survive byte for byte — users rely on
	// this to keep literal {{...}} text in their templates.
	cases := []struct {
		tmpl string
		vars map[string]string
		want string
	}{
		{"{{missing}}", map[string]string{}, "{{missing}}"},
		{"{{missing}}", nil, "{{missing}}"},
		{"a {{known}} b {{missing}} c", map[string]string{"known": "K"}, "a K b {{missing}} c"},
		{"{{UPPER_case9}}", map[string]string{"other": "x"}, "{{UPPER_case9}}"},
	}
	for _, c := range cases {
		if got := Render(c.tmpl, c.vars); got != c.want {
			t.Errorf("Render(%q) = %q, want %q", c.tmpl, got, c.want)
		}
	}
}

func TestRenderNoEscaping(t *testing.T) {
	// Braces that do not form a well-formed marker are left alone, and
	// there is no way to escape a marker.
	got := Render("{{}} {not a marker} {{spaced name}}", map[string]string{"spaced name": "x"})
	if got != "{{}} {not a marker} {{spaced name}}" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderEmptyValue(t *testing.T) {
	if got := Render("[{{v}}]", map[string]string{"v": ""}); got != "[]" {
		t.Errorf("Render = %q, want %q", got, "[]")
	}
}
