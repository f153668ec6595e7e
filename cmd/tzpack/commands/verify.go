package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/opencontainers/go-digest"
	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/tzpack/archive"
	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/internal/hash"
	"github.com/arloliu/tzpack/source"
	"github.com/arloliu/tzpack/zoneset"
)

type verifyConfig struct {
	*cli.Command
	Jobs       int    `cli:"name=j desc='number of zones fetched in parallel (default GOMAXPROCS)'"`
	Compressed bool   `cli:"name=compressed desc='also read zone files stored as .zst, .s2 or .lz4'"`
	Manifest   string `cli:"name=manifest desc='also check the archive digest recorded in this manifest'"`
	Quiet      bool   `cli:"name=q desc='only print failures'"`
}

// VerifyCommand returns the verify subcommand.
func VerifyCommand() *cli.Command {
	cfg := &verifyConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Command, "verify").
		WithSynopsis("verify [-j n] <archive> <setup file> <data dir> - compare an archive with its sources").
		WithDescription("verify re-reads every zone listed in the setup file and checks that the archive holds the same bytes.").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *verifyConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: verify requires 3 args, got %d", cli.ErrUsage, len(args))
	}
	archivePath, setupFile, dataDir := args[0], args[1], args[2]

	raw, err := os.ReadFile(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	if cfg.Manifest != "" {
		m, err := ReadManifest(cfg.Manifest)
		if err != nil {
			return err
		}
		if got := digest.FromBytes(raw); got != m.Digest {
			return fmt.Errorf("%w: %s is %s, manifest records %s", errs.ErrDigestMismatch, archivePath, got, m.Digest)
		}
	}

	a, err := archive.Open(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", archivePath, err)
	}

	setup, err := zoneset.ReadSetupFile(setupFile)
	if err != nil {
		return err
	}

	var dirOpts []source.DirOption
	if cfg.Compressed {
		dirOpts = append(dirOpts, source.WithCompressedVariants())
	}
	dir, err := source.NewDir(dataDir, dirOpts...)
	if err != nil {
		return err
	}

	checks, err := verifyZones(context.Background(), a, setup.Zones.Names(), source.WithLinks(dir, setup.Links), cfg.Jobs)
	if err != nil {
		return err
	}

	failed := printChecks(cc.Out, checks, cfg.Quiet, useColor(cc.Out))
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d zones differ", errs.ErrDigestMismatch, failed, len(checks))
	}

	return nil
}

var errNotInSetup = errors.New("not in setup file")

// zoneCheck is the outcome of comparing one zone with its source.
type zoneCheck struct {
	Name string
	// Want is the digest of the source bytes, Got of the archived bytes.
	Want, Got uint64
	// Err is set when the zone could not be compared at all.
	Err error
}

func (c zoneCheck) OK() bool {
	return c.Err == nil && c.Want == c.Got
}

func (c zoneCheck) String() string {
	switch {
	case c.Err != nil:
		return fmt.Sprintf("%s: %v", c.Name, c.Err)
	case c.Want != c.Got:
		return fmt.Sprintf("%s: archive %s, source %s", c.Name, hash.Format(c.Got), hash.Format(c.Want))
	default:
		return fmt.Sprintf("%s %s", c.Name, hash.Format(c.Got))
	}
}

// verifyZones fetches every zone in ids with at most jobs fetches in flight
// and compares it with the archived copy. Zones present in the archive but
// not in ids are reported as failures too. Results follow the order of ids,
// then the extra archive zones in index order.
//
// Per-zone problems are recorded in the results; the returned error is only
// set if ctx is canceled.
func verifyZones(ctx context.Context, a *archive.Archive, ids []string, f source.Fetcher, jobs int) ([]zoneCheck, error) {
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}

	checks := make([]zoneCheck, len(ids))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	for i, id := range ids {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c := zoneCheck{Name: id}
			if archived, err := a.Lookup(id); err != nil {
				c.Err = err
			} else if src, err := f.Fetch(id); err != nil {
				c.Err = err
			} else {
				c.Got = hash.Sum(archived)
				c.Want = hash.Sum(src)
			}
			checks[i] = c

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	listed := zoneset.Of(ids...)
	for _, name := range a.Names() {
		if !listed.Contains(name) {
			checks = append(checks, zoneCheck{Name: name, Err: errNotInSetup})
		}
	}

	return checks, nil
}

// printChecks writes one line per check and returns the number of failures.
func printChecks(w io.Writer, checks []zoneCheck, quiet, colored bool) int {
	okLabel := color.New(color.FgGreen)
	failLabel := color.New(color.FgRed, color.Bold)
	if colored {
		okLabel.EnableColor()
		failLabel.EnableColor()
	} else {
		okLabel.DisableColor()
		failLabel.DisableColor()
	}

	failed := 0
	for _, c := range checks {
		if c.OK() {
			if !quiet {
				fmt.Fprintf(w, "%s %s\n", okLabel.Sprint("OK  "), c)
			}
			continue
		}
		failed++
		fmt.Fprintf(w, "%s %s\n", failLabel.Sprint("FAIL"), c)
	}

	return failed
}

func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd())
}
