package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

const version = "0.1.0"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		if !errors.Is(err, errInvalidForm) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "formfield"
	app.Usage = "validate and fill typed forms"
	app.Version = version
	app.Writer = stdout
	app.ErrWriter = stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "path to an INI config file"},
		cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, error, crit or none"},
		cli.StringFlag{Name: "format", Usage: "record output format: json, form or pretty"},
		cli.StringFlag{Name: "locale", Usage: "locale used for error messages"},
	}

	formFlags := []cli.Flag{
		cli.StringFlag{Name: "file, f", Usage: "YAML or JSON form definition file"},
		cli.StringFlag{Name: "form", Usage: "form id; built-in forms are used when no file is given"},
		cli.StringSliceFlag{Name: "set, s", Usage: "field input as key=value, repeatable"},
	}

	app.Commands = []cli.Command{
		{
			Name:      "validate",
			Usage:     "validate field inputs and print the record or every error",
			ArgsUsage: " ",
			Flags: append(formFlags,
				cli.StringFlag{Name: "errors", Value: "text", Usage: "error output: text, html or json"},
				cli.StringFlag{Name: "server-errors", Usage: "JSON file of path to messages returned by a server"},
				cli.StringFlag{Name: "from-json", Usage: "JSON record whose values are validated before --set is applied"},
			),
			Action: validateAction,
		},
		{
			Name:   "prompt",
			Usage:  "fill a form interactively",
			Flags:  formFlags,
			Action: promptAction,
		},
		{
			Name:      "import-openapi",
			Usage:     "convert OpenAPI schemas into a form definition file",
			ArgsUsage: "openapi.yaml",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "schema", Usage: "component schema to convert"},
				cli.StringFlag{Name: "operation", Usage: "operation id whose request body is converted"},
				cli.StringFlag{Name: "out, o", Usage: "write the definition here instead of stdout"},
			},
			Action: importOpenAPIAction,
		},
		{
			Name:   "list",
			Usage:  "list the forms of a definition file or the built-in forms",
			Flags:  []cli.Flag{cli.StringFlag{Name: "file, f", Usage: "YAML or JSON form definition file"}},
			Action: listAction,
		},
	}

	return app
}
