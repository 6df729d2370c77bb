package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfield/pkg/form"
)

const summaryTemplate = `<div class="formfield-summary" data-form="{{ form }}">
{% if form_errors %}
  <ul class="formfield-form-errors">{% for message in form_errors %}<li>{{ message }}</li>{% endfor %}</ul>
{% endif %}
{% for row in rows %}
  <div class="formfield-row{% if row.messages %} is-invalid{% endif %}" data-field="{{ row.key }}">
    <span class="formfield-label">{{ row.label }}</span>
    <span class="formfield-input">{{ row.input }}</span>
    {% for message in row.messages %}
    <span class="formfield-error" role="alert">{{ message }}</span>
    {% endfor %}
  </div>
{% endfor %}
</div>
`

var (
	summaryOnce sync.Once
	summaryTpl  *pongo2.Template
	summaryErr  error

	inputPolicyOnce sync.Once
	inputPolicy     *bluemonday.Policy
)

// FormatHTML renders the same rows as FormatText as an HTML fragment. Raw
// input is stripped of markup before it is echoed back.
func FormatHTML(f *form.Form, extra ErrorMapping, opts Options) (string, error) {
	tpl, err := summaryTemplateOnce()
	if err != nil {
		return "", err
	}

	rows := Rows(f, extra, opts)
	data := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		data = append(data, map[string]any{
			"key":      row.Key,
			"label":    row.Label,
			"input":    pongo2.AsSafeValue(sanitizeInput(row.Input)),
			"messages": row.Messages,
		})
	}

	out, err := tpl.Execute(pongo2.Context{
		"form":        f.ID(),
		"form_errors": extra.Form,
		"rows":        data,
	})
	if err != nil {
		return "", fmt.Errorf("render: execute summary template: %w", err)
	}
	return out, nil
}

func summaryTemplateOnce() (*pongo2.Template, error) {
	summaryOnce.Do(func() {
		summaryTpl, summaryErr = pongo2.FromString(summaryTemplate)
		if summaryErr != nil {
			summaryErr = fmt.Errorf("render: parse summary template: %w", summaryErr)
		}
	})
	return summaryTpl, summaryErr
}

func sanitizeInput(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	inputPolicyOnce.Do(func() {
		inputPolicy = bluemonday.StrictPolicy()
	})
	return inputPolicy.Sanitize(raw)
}
