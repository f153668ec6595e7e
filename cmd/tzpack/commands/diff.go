package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/arloliu/tzpack/archive"
	"github.com/arloliu/tzpack/internal/hash"
)

type diffConfig struct {
	*cli.Command
}

// DiffCommand returns the diff subcommand.
func DiffCommand() *cli.Command {
	cfg := &diffConfig{}

	return cli.NewCommandAt(&cfg.Command, "diff").
		WithSynopsis("diff <old archive> <new archive> - show zones added, removed or changed").
		WithDescription("diff compares the zone lists of two archives by name, length and content digest. It exits with status 1 when they differ.").
		WithRun(cfg.run)
}

func (cfg *diffConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %d", cli.ErrUsage, len(args))
	}

	from, err := archive.OpenFile(args[0])
	if err != nil {
		return err
	}
	to, err := archive.OpenFile(args[1])
	if err != nil {
		return err
	}

	if writeDiff(cc.Out, zoneLines(from), zoneLines(to)) {
		return cli.ExitCodeErr(1)
	}

	return nil
}

// zoneLines renders the parts of an archive that matter to its users, one
// zone per line. Offsets are left out since they shift whenever a zone
// before them changes size.
func zoneLines(a *archive.Archive) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "version %s\n", a.Version())
	for e, data := range a.All() {
		fmt.Fprintf(&sb, "%s %d %s\n", e.Name, e.Length, hash.Format(hash.Sum(data)))
	}

	return sb.String()
}

// writeDiff writes the lines removed from `from` prefixed with "-" and the
// lines added in `to` prefixed with "+". It reports whether anything differs.
func writeDiff(w io.Writer, from, to string) bool {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	differs := false
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		differs = true
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(w, "%s %s", prefix, line)
		}
	}

	return differs
}
