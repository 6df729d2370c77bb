package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formfield/pkg/form"
)

// Row is one field as shown to the user: its raw input with every message
// that applies to it.
type Row struct {
	Key      string
	Label    string
	Input    string
	Messages []string
}

// Rows lists every field of f in declaration order, with local issues and
// the field entries of extra (for example a mapped server payload) attached.
func Rows(f *form.Form, extra ErrorMapping, opts Options) []Row {
	mapping := Combine(Summarize(f, opts), extra)
	inputs := f.Inputs()

	rows := make([]Row, 0, f.Len())
	for _, key := range f.Keys() {
		rows = append(rows, Row{
			Key:      key,
			Label:    f.Label(key),
			Input:    inputs[key],
			Messages: mapping.Fields[key],
		})
	}
	return rows
}

// FormatText renders every field with its messages directly underneath, so
// all problems are visible at once:
//
//	Title: ""
//	  ! Field cannot be empty
//	Rating: "5"
func FormatText(f *form.Form, extra ErrorMapping, opts Options) string {
	var b strings.Builder
	for _, row := range Rows(f, extra, opts) {
		fmt.Fprintf(&b, "%s: %q\n", row.Label, row.Input)
		for _, message := range row.Messages {
			fmt.Fprintf(&b, "  ! %s\n", message)
		}
	}
	for _, message := range extra.Form {
		fmt.Fprintf(&b, "! %s\n", message)
	}
	return b.String()
}

// FormatIssues renders only the invalid fields, one "label: message" line
// each.
func FormatIssues(f *form.Form, opts Options) string {
	var lines []string
	for _, issue := range f.Issues() {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Label(issue.Key), Localize(issue.Issue, opts)))
	}
	return strings.Join(lines, "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
