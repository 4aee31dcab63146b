package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/nickwells/macrayon.mod/internal/config"
	"github.com/nickwells/macrayon.mod/internal/walk"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// newRootCmd returns the base command, with its subcommands, used when the
// program is called
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "macrayon [flags] [macros_file source_file target_file]",
		Short: "Expand the macros in source files.",
		Long: `Expand the macros in source files.
	With no arguments the macros are loaded from the MACROS file and every
	*.macry file below the current directory is expanded into the
	corresponding *.cry file. With three arguments the macros are loaded from
	the first, the second is expanded and the result written to the third.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("expected no arguments or three"+
					" (macros file, source, target), got %d", len(args))
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			if getFlag(cmd, "version") {
				printVersion(cmd)
				return
			}

			cfg := readConfig(cmd)
			if err := transform(cfg, args); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().String("config", config.DfltConfigFile,
		"read settings from this YAML file")
	rootCmd.PersistentFlags().StringArray("macros", nil,
		"load macro definitions from this file (may be repeated)")
	rootCmd.PersistentFlags().StringArray("dir", nil,
		"search this directory for macro definitions files (may be repeated)")
	rootCmd.PersistentFlags().StringArray("suffix", nil,
		"try this suffix when searching for definitions files (may be repeated)")
	rootCmd.PersistentFlags().String("mark", config.DfltMark,
		"the character used to mark macros")
	rootCmd.PersistentFlags().String("src-ext", config.DfltSrcExt,
		"the extension of source files")
	rootCmd.PersistentFlags().String("dst-ext", config.DfltDstExt,
		"the extension given to expanded files")
	rootCmd.PersistentFlags().Bool("keep-going", false,
		"continue with the remaining files after an error")
	rootCmd.PersistentFlags().Bool("no-redefine", false,
		"report an error if a macro is defined more than once")
	rootCmd.PersistentFlags().Bool("dry-run", false,
		"expand the files but do not write the results")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"increase logging verbosity")

	rootCmd.AddCommand(newListCmd(), newCheckCmd())

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "macrayon ")
	if Version != "" {
		// Built via "make"
		fmt.Fprintf(out, "%s", Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		fmt.Fprintf(out, "%s", info.Main.Version)
	} else {
		// Unknown, perhaps "go run"
		fmt.Fprintf(out, "(unknown version)")
	}
	fmt.Fprintln(out)
}

// transform either expands a single file (if there are three arguments) or
// every source file below the current directory
func transform(cfg *config.Config, args []string) error {
	if len(args) == 3 {
		cfg.Macros = []string{args[0]}
	}

	tbl, err := loadTable(cfg)
	if err != nil {
		return err
	}

	w := &walk.Walker{
		Table:     tbl,
		SrcExt:    cfg.SrcExt,
		DstExt:    cfg.DstExt,
		KeepGoing: cfg.KeepGoing,
		DryRun:    cfg.DryRun,
	}

	if len(args) == 3 {
		return w.ExpandFile(args[1], args[2])
	}

	sum, err := w.Run(".")
	log.WithFields(log.Fields{
		"files":  sum.Files,
		"failed": sum.Failed,
	}).Debug("done")

	return err
}
