// Package template implements the placeholder substitution used by note
// templates. A marker looks like {{name}}; a marker whose name has no
// entry in the variable map renders literally, character for character.
// There is no escaping of {{ or }} — a long-standing compatibility
// constraint of existing user templates.
package template

import "regexp"

var marker = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Render replaces every {{name}} marker in tmpl with vars[name].
// Unknown names pass through unchanged. Never fails.
func Render(tmpl string, vars map[string]string) string {
	return marker.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := vars[m[2:len(m)-2]]; ok {
			return v
		}
		return m
	})
}
