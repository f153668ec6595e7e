package commands

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/arloliu/tzpack/archive"
	"github.com/arloliu/tzpack/errs"
)

type extractConfig struct {
	*cli.Command
	Output string `cli:"name=o desc='write the zone to this file instead of stdout'"`
}

// ExtractCommand returns the extract subcommand.
func ExtractCommand() *cli.Command {
	cfg := &extractConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Command, "extract").
		WithAliases("x").
		WithSynopsis("extract [-o file] <archive> <zone> - print the bytes of one zone").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *extractConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: extract requires 2 args, got %d", cli.ErrUsage, len(args))
	}

	a, err := archive.OpenFile(args[0])
	if err != nil {
		return err
	}

	data, err := a.Lookup(args[1])
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, data, 0o644); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
		}

		return nil
	}

	_, err = cc.Out.Write(data)

	return err
}
