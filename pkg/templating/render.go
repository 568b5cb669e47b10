// Package templating renders report templates with sprig functions
// available.
package templating

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/pkg/errors"
)

// RenderTemplate compiles and renders a template against input. Missing keys
// are errors so a malformed report fails loudly instead of printing blanks.
func RenderTemplate(rawTemplate string, input interface{}) (string, error) {
	t, err := template.New("report").
		Funcs(sprig.TxtFuncMap()).
		Parse(rawTemplate)
	if err != nil {
		return "", errors.Wrap(err, "could not parse template")
	}

	w := new(strings.Builder)
	if err := t.Option("missingkey=error").Execute(w, input); err != nil {
		return "", errors.Wrapf(err, "could not execute template with input %#v", input)
	}

	return w.String(), nil
}
