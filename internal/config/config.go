// Package config holds the settings for a run of the preprocessor. The
// settings start with the defaults, may be overlaid from a YAML file and
// finally from the command line.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Default values
const (
	DfltMacrosFile = "MACROS"
	DfltConfigFile = "macrayon.yaml"
	DfltSrcExt     = ".macry"
	DfltDstExt     = ".cry"
	DfltMark       = "#"
)

// Config records the settings for a run
type Config struct {
	// Macros lists the definitions files, loaded in order
	Macros []string `yaml:"macros"`

	// Dirs lists the directories searched for definitions files given by
	// name, Suffixes are tried in order when searching them
	Dirs     []string `yaml:"dirs"`
	Suffixes []string `yaml:"suffixes"`

	Mark   string `yaml:"mark"`
	SrcExt string `yaml:"srcExt"`
	DstExt string `yaml:"dstExt"`

	// KeepGoing continues with the next source file after an error
	KeepGoing  bool `yaml:"keepGoing"`
	NoRedefine bool `yaml:"noRedefine"`
	DryRun     bool `yaml:"dryRun"`
	Verbose    bool `yaml:"verbose"`
}

// New returns a Config holding the default values
func New() *Config {
	return &Config{
		Macros: []string{DfltMacrosFile},
		Mark:   DfltMark,
		SrcExt: DfltSrcExt,
		DstExt: DfltDstExt,
	}
}

// Load reads the named YAML file and overlays its values on the Config.
// Values not given in the file are left unchanged. If mustExist is false a
// missing file is not an error.
func (c *Config) Load(filename string, mustExist bool) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		if !mustExist && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot read the config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("bad config file %q: %w", filename, err)
	}

	return nil
}

// MarkRune returns the mark as a rune
func (c *Config) MarkRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Mark)
	return r
}

// Check returns an error if the Config is not usable
func (c *Config) Check() error {
	if utf8.RuneCountInString(c.Mark) != 1 {
		return fmt.Errorf("the mark (%q) must be a single character", c.Mark)
	}
	if len(c.Macros) == 0 {
		return errors.New("no macro definitions files have been given")
	}
	for _, ext := range []string{c.SrcExt, c.DstExt} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("the file extension %q must start with '.'"+
				" and not be empty", ext)
		}
	}
	if c.SrcExt == c.DstExt {
		return fmt.Errorf("the source and target extensions are both %q",
			c.SrcExt)
	}

	return nil
}
