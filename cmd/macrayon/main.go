// macrayon expands the macros in source files. See the help message
// (macrayon --help) for details.
package main

import "github.com/nickwells/macrayon.mod/internal/cli"

func main() {
	cli.Execute()
}
