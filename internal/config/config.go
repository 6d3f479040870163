// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/options"
	"gopkg.in/ini.v1"
)

// DefaultFile is loaded from the working directory if no config file is given.
const DefaultFile = "smashtvedit.ini"

// File contains the settings of the ini config file.
type File struct {
	Dir             string // directory to write the edited ROM to
	CenterNames     bool
	StrictAddresses bool
	Debug           bool
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// LoadFile loads the config file at the given path. An empty path loads the
// default file, which is optional.
func LoadFile(path string) (File, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		path = DefaultFile
	}

	file, err := Load(path)
	if err != nil {
		return File{}, fmt.Errorf("loading config file '%s': %w", path, err)
	}
	return file, nil
}

// Load parses a config from a file name or raw data.
func Load(source any) (File, error) {
	cfg, err := ini.Load(source)
	if err != nil {
		return File{}, err
	}

	def := Default()
	section := cfg.Section("")
	return File{
		Dir:             section.Key("dir").String(),
		CenterNames:     section.Key("center_names").MustBool(def.CenterNames),
		StrictAddresses: section.Key("strict_addresses").MustBool(def.StrictAddresses),
		Debug:           section.Key("debug").MustBool(def.Debug),
	}, nil
}

// Default returns the settings used without a config file.
func Default() File {
	return File{
		CenterNames: true,
	}
}

// Apply merges the config file settings into the program options, options
// set on the command line take precedence.
func Apply(opts *options.Program, file File) {
	if opts.Dir == "" {
		opts.Dir = file.Dir
	}
	opts.Strict = opts.Strict || file.StrictAddresses
	opts.NoCenter = opts.NoCenter || !file.CenterNames
	opts.Debug = opts.Debug || file.Debug
}
