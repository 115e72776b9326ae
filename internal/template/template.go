// Package template renders {{name}} placeholders in document source text
// against a map of named values. Literal text passes through verbatim;
// referencing an undefined name is a render error.
package template

import (
	"fmt"
	"strings"
)

type code interface {
	render(b *strings.Builder, vars map[string]any) error
}

// text passes source through unchanged.
type text string

func (t text) render(b *strings.Builder, _ map[string]any) error {
	b.WriteString(string(t))
	return nil
}

// expr substitutes one named value.
type expr string

func (e expr) render(b *strings.Builder, vars map[string]any) error {
	value, ok := vars[string(e)]
	if !ok {
		return fmt.Errorf("undefined template variable %q", string(e))
	}
	fmt.Fprint(b, value)
	return nil
}

// Template is a tokenized source text ready to render against a variable
// map. Tokenizing never fails; an unterminated {{ is treated as literal
// text.
type Template struct {
	codes []code
}

// New tokenizes source into literal text and {{name}} expressions.
func New(source string) *Template {
	t := &Template{}
	rest := source
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			break
		}
		end += start
		if start > 0 {
			t.codes = append(t.codes, text(rest[:start]))
		}
		t.codes = append(t.codes, expr(strings.TrimSpace(rest[start+2:end])))
		rest = rest[end+2:]
	}
	if rest != "" {
		t.codes = append(t.codes, text(rest))
	}
	return t
}

// Render substitutes vars into the template.
func (t *Template) Render(vars map[string]any) (string, error) {
	var b strings.Builder
	for _, c := range t.codes {
		if err := c.render(&b, vars); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Render is a convenience for one-shot rendering.
func Render(source string, vars map[string]any) (string, error) {
	return New(source).Render(vars)
}
