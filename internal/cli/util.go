package cli

import (
	"fmt"
	"os"

	"github.com/nickwells/macrayon.mod/internal/config"
	"github.com/nickwells/macrayon.mod/macros"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string array, or exit if an error arises.
func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// readConfig builds the configuration and sets the log level, it exits if
// the configuration is not usable
func readConfig(cmd *cobra.Command) *config.Config {
	cfg, err := buildConfig(cmd)
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	return cfg
}

// buildConfig starts with the default configuration, overlays any config
// file and then any flags given on the command line
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.New()

	flags := cmd.Flags()
	if err := cfg.Load(getString(cmd, "config"), flags.Changed("config")); err != nil {
		return nil, err
	}

	if flags.Changed("macros") {
		cfg.Macros = getStringArray(cmd, "macros")
	}
	if flags.Changed("dir") {
		cfg.Dirs = getStringArray(cmd, "dir")
	}
	if flags.Changed("suffix") {
		cfg.Suffixes = getStringArray(cmd, "suffix")
	}
	if flags.Changed("mark") {
		cfg.Mark = getString(cmd, "mark")
	}
	if flags.Changed("src-ext") {
		cfg.SrcExt = getString(cmd, "src-ext")
	}
	if flags.Changed("dst-ext") {
		cfg.DstExt = getString(cmd, "dst-ext")
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing = getFlag(cmd, "keep-going")
	}
	if flags.Changed("no-redefine") {
		cfg.NoRedefine = getFlag(cmd, "no-redefine")
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = getFlag(cmd, "dry-run")
	}
	if flags.Changed("verbose") {
		cfg.Verbose = getFlag(cmd, "verbose")
	}

	return cfg, cfg.Check()
}

// loadTable loads all the macro definitions files. A name which is an
// existing file is loaded directly, any other name is searched for in the
// definitions directories.
func loadTable(cfg *config.Config) (*macros.Table, error) {
	opts := []macros.OptFunc{macros.Mark(cfg.MarkRune())}
	if len(cfg.Dirs) > 0 {
		opts = append(opts, macros.Dirs(cfg.Dirs...))
	}
	for _, s := range cfg.Suffixes {
		opts = append(opts, macros.Suffix(s))
	}
	if cfg.NoRedefine {
		opts = append(opts, macros.NoRedefinition())
	}

	l, err := macros.NewLoader(opts...)
	if err != nil {
		return nil, err
	}

	for _, name := range cfg.Macros {
		if _, statErr := os.Stat(name); statErr == nil || len(cfg.Dirs) == 0 {
			err = l.LoadFile(name)
		} else {
			err = l.LoadNamed(name)
		}
		if err != nil {
			return nil, err
		}
		log.WithField("macros", name).Debug("loaded")
	}

	tbl := l.Table()
	log.WithField("count", tbl.Len()).Debug("macros defined")

	return tbl, nil
}
