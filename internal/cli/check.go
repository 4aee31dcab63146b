package cli

import (
	"fmt"
	"os"

	"github.com/nickwells/macrayon.mod/internal/config"
	"github.com/nickwells/macrayon.mod/internal/walk"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] [dir...]",
		Short: "check that every source file expands.",
		Long: `Check that every source file below the given directories (or the
	current directory) expands without error. Nothing is written. All the
	source files are checked, even after an error.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := readConfig(cmd)
			if err := checkSources(cfg, args); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		},
	}
}

// checkSources expands every source file below each of the directories
// without writing anything
func checkSources(cfg *config.Config, dirs []string) error {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	tbl, err := loadTable(cfg)
	if err != nil {
		return err
	}

	w := &walk.Walker{
		Table:     tbl,
		SrcExt:    cfg.SrcExt,
		DstExt:    cfg.DstExt,
		KeepGoing: true,
		DryRun:    true,
	}

	var failed int
	for _, dir := range dirs {
		sum, err := w.Run(dir)
		failed += sum.Failed
		if err != nil && sum.Failed == 0 {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d source file(s) could not be expanded", failed)
	}

	return nil
}
