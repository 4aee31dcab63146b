package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nickwells/macrayon.mod/macros"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [flags]",
		Short: "list the macros which are defined.",
		Long: `List the name and parameters of every macro defined in the macro
	definitions files, in name order.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := readConfig(cmd)
			tbl, err := loadTable(cfg)
			if err != nil {
				log.Error(err)
				os.Exit(1)
			}

			listMacros(cmd.OutOrStdout(), tbl)
		},
	}
}

// listMacros writes one line per macro giving its name and parameters
func listMacros(w io.Writer, tbl *macros.Table) {
	for _, name := range tbl.Names() {
		d, _ := tbl.Find(name)
		fmt.Fprintf(w, "%s(%s)\n", d.Name, strings.Join(d.Params, ", "))
	}
}
