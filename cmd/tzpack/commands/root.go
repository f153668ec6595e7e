// Package commands implements the tzpack command line tool.
package commands

import (
	"github.com/scott-cotton/cli"
)

const usageText = `tzpack - pack timezone rule files into one indexed archive

Usage:
  tzpack pack <setup file> <data dir> <output dir> <version>   Build <output dir>/tzdata
  tzpack list [-yaml] <archive>                               Show the header and index
  tzpack extract [-o file] <archive> <zone>                   Print the bytes of one zone
  tzpack verify [-j n] <archive> <setup file> <data dir>      Compare an archive with its sources
  tzpack diff <old archive> <new archive>                     Show zones added, removed or changed

The setup file lists one zone per line. Blank lines and lines starting
with # are ignored. "Link <target> <link name>" packs zone <link name>
using the file of the existing zone <target>, as zic does.

Examples:
  tzpack pack setup zoneinfo out tzdata2025a
  tzpack pack -manifest out/tzdata.yaml setup zoneinfo out tzdata2025a
  tzpack list out/tzdata
  tzpack extract -o Paris out/tzdata Europe/Paris
  tzpack verify -j 8 out/tzdata setup zoneinfo
  tzpack diff old/tzdata out/tzdata`

// Root returns the root command for tzpack.
func Root() *cli.Command {
	return cli.NewCommand("tzpack").
		WithSynopsis("tzpack - timezone rule archive packer").
		WithDescription(usageText).
		WithSubs(
			PackCommand(),
			ListCommand(),
			ExtractCommand(),
			VerifyCommand(),
			DiffCommand(),
		)
}
