package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
	"github.com/vaughan0/go-ini"
	log "gopkg.in/inconshreveable/log15.v2"

	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/tui"
)

const messagesSection = "messages."

type config struct {
	logLevel string
	format   tui.OutputFormat
	locale   string
	catalog  render.Catalog
}

func defaultConfig() config {
	return config{
		logLevel: "warn",
		format:   tui.OutputFormatJSON,
		catalog:  render.Catalog{},
	}
}

func loadConfig(path string) (ini.File, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	file, err := ini.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	return file, nil
}

// resolveConfig reads the optional config file and applies global flag
// overrides on top of it.
func resolveConfig(c *cli.Context) (config, error) {
	conf := defaultConfig()

	if path := c.GlobalString("config"); path != "" {
		file, err := loadConfig(path)
		if err != nil {
			return conf, err
		}
		if err := conf.apply(file); err != nil {
			return conf, err
		}
	}

	if c.GlobalIsSet("log-level") {
		conf.logLevel = c.GlobalString("log-level")
	}
	if c.GlobalIsSet("format") {
		format, ok := tui.ParseOutputFormat(c.GlobalString("format"))
		if !ok {
			return conf, fmt.Errorf("unknown output format %q", c.GlobalString("format"))
		}
		conf.format = format
	}
	if c.GlobalIsSet("locale") {
		conf.locale = c.GlobalString("locale")
	}

	return conf, nil
}

func (conf *config) apply(file ini.File) error {
	if level, ok := file.Get("log", "level"); ok && level != "" {
		conf.logLevel = level
	}
	if raw, ok := file.Get("output", "format"); ok && raw != "" {
		format, ok := tui.ParseOutputFormat(raw)
		if !ok {
			return fmt.Errorf("config: unknown output format %q", raw)
		}
		conf.format = format
	}
	if locale, ok := file.Get("i18n", "locale"); ok {
		conf.locale = locale
	}

	for name, section := range file {
		if !strings.HasPrefix(name, messagesSection) {
			continue
		}
		locale := strings.TrimPrefix(name, messagesSection)
		for key, format := range section {
			conf.catalog.Set(locale, key, format)
		}
	}
	return nil
}

func (conf config) messages() render.Options {
	opts := render.Options{Locale: conf.locale}
	if len(conf.catalog) > 0 {
		opts.Translator = conf.catalog
	}
	return opts
}

func newLogger(level string, w io.Writer) (log.Logger, error) {
	logger := log.New("module", "formfield")
	if err := setFilterHandler(level, logger, log.StreamHandler(w, log.LogfmtFormat())); err != nil {
		return nil, err
	}
	return logger, nil
}

func setFilterHandler(level string, logger log.Logger, handler log.Handler) error {
	if level == "none" {
		logger.SetHandler(log.DiscardHandler())
		return nil
	}

	lvl, err := log.LvlFromString(level)
	if err != nil {
		return fmt.Errorf("bad log level: %w", err)
	}
	logger.SetHandler(log.LvlFilterHandler(lvl, handler))

	return nil
}
