package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli"
	log "gopkg.in/inconshreveable/log15.v2"

	"github.com/goliatone/go-formfield/internal/catalog"
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/remote"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/tui"
	"github.com/goliatone/go-formfield/pkg/schema"
)

var (
	// errInvalidForm is returned after the validation errors were printed.
	errInvalidForm = errors.New("form is invalid")
	errNotTerminal = errors.New("prompt requires an interactive terminal")
)

var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type env struct {
	conf   config
	logger log.Logger
}

func newEnv(c *cli.Context) (env, error) {
	conf, err := resolveConfig(c)
	if err != nil {
		return env{}, err
	}
	logger, err := newLogger(conf.logLevel, c.App.ErrWriter)
	if err != nil {
		return env{}, err
	}
	return env{conf: conf, logger: logger.New("cmd", c.Command.Name)}, nil
}

type formSource struct {
	form   *form.Form
	submit func(*form.Form) (any, error)
}

func resolveForm(c *cli.Context) (formSource, error) {
	id := c.String("form")

	path := c.String("file")
	if path == "" {
		if id == "" {
			return formSource{}, errors.New("either --file or --form is required")
		}
		def, err := catalog.Lookup(id)
		if err != nil {
			return formSource{}, err
		}
		return formSource{form: def.New(), submit: def.Submit}, nil
	}

	doc, err := schema.LoadFile(path)
	if err != nil {
		return formSource{}, err
	}
	if id == "" && len(doc.Forms) == 1 {
		id = doc.Forms[0].ID
	}
	def, ok := doc.Form(id)
	if !ok {
		return formSource{}, fmt.Errorf("form %q not found in %s (have %s)", id, path, strings.Join(doc.IDs(), ", "))
	}
	f, err := def.Build()
	if err != nil {
		return formSource{}, err
	}
	return formSource{form: f, submit: collect}, nil
}

func collect(f *form.Form) (any, error) {
	return schema.Collect(f)
}

func parseAssignments(raw []string) (map[string]string, error) {
	values := make(map[string]string, len(raw))
	for _, assignment := range raw {
		key, value, ok := strings.Cut(assignment, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("bad --set %q, want key=value", assignment)
		}
		values[strings.TrimSpace(key)] = value
	}
	return values, nil
}

func validateAction(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	src, err := resolveForm(c)
	if err != nil {
		return err
	}
	values, err := parseAssignments(c.StringSlice("set"))
	if err != nil {
		return err
	}
	extra, err := loadServerErrors(c.String("server-errors"), src.form)
	if err != nil {
		return err
	}
	if path := c.String("from-json"); path != "" {
		record := loadRecord(path)
		if err := record.Err(); err != nil {
			return err
		}
		touched, err := remote.Resolve(record, src.form, recordInputs(src.form))
		if err != nil {
			return err
		}
		e.logger.Debug("record resolved", "form", src.form.ID(), "file", path, "touched", touched)
	}

	// Records are built from the form itself so built-in and file forms share
	// one constructor signature.
	session := form.NewSession(src.form, func(*form.Values) (any, error) {
		return src.submit(src.form)
	})
	effect, err := session.Dispatch(form.Loaded{Values: values})
	if err != nil {
		return err
	}
	e.logger.Debug("inputs loaded", "form", src.form.ID(), "fields", len(values), "invalid", len(effect.Issues))

	if len(effect.Issues) == 0 && extra.Empty() {
		effect, err = session.Dispatch(form.SubmitRequested{})
		if err != nil {
			return err
		}
		if effect.Submitted {
			body, err := tui.Encode(e.conf.format, effect.Record)
			if err != nil {
				return err
			}
			e.logger.Info("form submitted", "form", src.form.ID())
			fmt.Fprintln(c.App.Writer, string(body))
			return nil
		}
	}

	e.logger.Warn("form rejected", "form", src.form.ID(), "invalid", len(effect.Issues), "server", !extra.Empty())
	out, err := formatErrors(c.String("errors"), src.form, extra, e.conf.messages())
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, out)
	return errInvalidForm
}

// loadRecord reads a previously fetched JSON object. Read and decode
// failures are carried as remote failures.
func loadRecord(path string) remote.Data[map[string]any] {
	data, err := os.ReadFile(path)
	if err != nil {
		return remote.Failure[map[string]any](fmt.Errorf("read record: %w", err))
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return remote.Failure[map[string]any](fmt.Errorf("decode record %s: %w", path, err))
	}
	return remote.Success(record)
}

// recordInputs turns record values into field text. Nulls and keys the form
// does not declare are skipped.
func recordInputs(f *form.Form) func(map[string]any) map[string]string {
	return func(record map[string]any) map[string]string {
		values := make(map[string]string, len(record))
		for key, value := range record {
			if value == nil {
				continue
			}
			if _, ok := f.Entry(key); !ok {
				continue
			}
			values[key] = fmt.Sprint(value)
		}
		return values
	}
}

func loadServerErrors(path string, f *form.Form) (render.ErrorMapping, error) {
	if path == "" {
		return render.ErrorMapping{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return render.ErrorMapping{}, fmt.Errorf("read server errors: %w", err)
	}
	var payload map[string][]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return render.ErrorMapping{}, fmt.Errorf("decode server errors %s: %w", path, err)
	}
	return render.MapErrorPayload(f, payload), nil
}

func formatErrors(kind string, f *form.Form, extra render.ErrorMapping, opts render.Options) (string, error) {
	out, err := render.DefaultRegistry().Format(kind, f, extra, opts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func promptAction(c *cli.Context) error {
	if !stdinIsTerminal() {
		return errNotTerminal
	}
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	src, err := resolveForm(c)
	if err != nil {
		return err
	}
	values, err := parseAssignments(c.StringSlice("set"))
	if err != nil {
		return err
	}
	if err := src.form.Prefill(values); err != nil {
		return err
	}

	renderer := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(c.App.ErrWriter)),
		tui.WithOutputFormat(e.conf.format),
		tui.WithSubmitter(src.submit),
		tui.WithLocalization(e.conf.messages()),
	)
	out, err := renderer.Render(context.Background(), src.form)
	if errors.Is(err, tui.ErrAborted) {
		e.logger.Info("prompt aborted", "form", src.form.ID())
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

func importOpenAPIAction(c *cli.Context) error {
	if len(c.Args()) != 1 {
		return errors.New("import-openapi takes exactly one OpenAPI document")
	}
	e, err := newEnv(c)
	if err != nil {
		return err
	}

	importer, err := openapi.LoadFile(context.Background(), c.Args().First())
	if err != nil {
		return err
	}

	var doc schema.Document
	switch {
	case c.String("schema") != "":
		def, err := importer.Schema(c.String("schema"))
		if err != nil {
			return err
		}
		doc.Forms = []schema.FormDef{def}
	case c.String("operation") != "":
		def, err := importer.Operation(c.String("operation"))
		if err != nil {
			return err
		}
		doc.Forms = []schema.FormDef{def}
	default:
		if doc, err = importer.Document(); err != nil {
			return err
		}
	}

	data, err := schema.Marshal(doc)
	if err != nil {
		return err
	}
	e.logger.Info("definitions imported", "forms", len(doc.Forms))

	if path := c.String("out"); path != "" {
		return os.WriteFile(path, data, 0o644)
	}
	_, err = c.App.Writer.Write(data)
	return err
}

func listAction(c *cli.Context) error {
	path := c.String("file")
	if path == "" {
		for _, def := range catalog.Definitions() {
			fmt.Fprintf(c.App.Writer, "%s\t%s\t%d fields\n", def.ID, def.Title, def.New().Len())
		}
		return nil
	}

	doc, err := schema.LoadFile(path)
	if err != nil {
		return err
	}
	for _, def := range doc.Forms {
		title := def.Title
		if title == "" {
			title = def.ID
		}
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%d fields\n", def.ID, title, len(def.Fields))
	}
	return nil
}
