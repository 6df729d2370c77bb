package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formfield/pkg/form"
)

// ErrorMapping splits messages into field-level entries keyed by field key
// and form-level entries that belong to no single field.
type ErrorMapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// Summarize collects the current issue of every invalid field, localized
// through opts. All fields are reported, not only the first.
func Summarize(f *form.Form, opts Options) ErrorMapping {
	mapping := ErrorMapping{}
	for _, issue := range f.Issues() {
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		message := Localize(issue.Issue, opts)
		mapping.Fields[issue.Key] = normalizeMessages(append(mapping.Fields[issue.Key], message))
	}
	return mapping
}

// Combine merges b into a. Field messages are concatenated per key and
// deduplicated.
func Combine(a, b ErrorMapping) ErrorMapping {
	out := ErrorMapping{Form: MergeFormErrors(a.Form, b.Form...)}
	for _, source := range []map[string][]string{a.Fields, b.Fields} {
		for key, messages := range source {
			if out.Fields == nil {
				out.Fields = make(map[string][]string)
			}
			out.Fields[key] = normalizeMessages(append(out.Fields[key], messages...))
		}
	}
	return out
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps an error payload returned by a collaborator (for
// example a server rejecting a submitted record) onto the keys of f. Paths
// may be JSON pointers or dotted paths wrapped in request envelopes; paths
// that match no field become form-level messages so nothing is lost.
func MapErrorPayload(f *form.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	keys := make(map[string]struct{}, f.Len())
	for _, key := range f.Keys() {
		keys[key] = struct{}{}
	}

	for _, rawPath := range sortedKeys(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		key, formLevel := mapErrorPath(rawPath, keys)
		if formLevel {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[key] = normalizeMessages(append(mapping.Fields[key], messages...))
	}

	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, keys map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", true
	}
	segments := stripNumericSegments(dropWrapperSegments(parsePathSegments(raw)))
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := keys[candidate]; ok {
			return candidate, false
		}
	}
	return "", true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	return segments
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
