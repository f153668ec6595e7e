package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
	"github.com/scott-cotton/cli"

	"github.com/arloliu/tzpack"
	"github.com/arloliu/tzpack/archive"
	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/source"
	"github.com/arloliu/tzpack/zoneset"
)

type packConfig struct {
	*cli.Command
	Output     string `cli:"name=o desc='archive file name inside the output directory (default tzdata)'"`
	Compressed bool   `cli:"name=compressed desc='also read zone files stored as .zst, .s2 or .lz4'"`
	Manifest   string `cli:"name=manifest desc='write a YAML manifest of the archive to this path'"`
	Verbose    bool   `cli:"name=v desc='log every packed zone'"`
}

// PackCommand returns the pack subcommand.
func PackCommand() *cli.Command {
	cfg := &packConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Command, "pack").
		WithSynopsis("pack [opts] <setup file> <data dir> <output dir> <version>").
		WithDescription("pack reads the zones listed in the setup file from the data directory and writes one archive.").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *packConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 4 {
		return fmt.Errorf("%w: pack requires 4 args, got %d", cli.ErrUsage, len(args))
	}
	setupFile, dataDir, outputDir, version := args[0], args[1], args[2], args[3]

	log := newLogger(os.Stderr, cfg.Verbose)

	w, err := archive.NewWriter(version)
	if err != nil {
		return err
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

	idx, err := archive.BuildIndex(setup.Zones.Names(), source.WithLinks(dir, setup.Links))
	if err != nil {
		return err
	}

	for _, e := range idx.Entries() {
		log.Debug("zone", "name", e.Name, "offset", e.Offset, "length", e.Length)
		if first, ok := idx.DuplicateOf(e.Name); ok {
			log.Warn("zone bytes identical to an earlier zone, consider a Link line", "zone", e.Name, "same_as", first)
		}
	}

	name := cfg.Output
	if name == "" {
		name = tzpack.ArchiveFileName
	}
	path := filepath.Join(outputDir, name)

	size, dgst, err := writeArchive(path, w, idx)
	if err != nil {
		return err
	}

	st := idx.Stats()
	log.Info("packed", "archive", path, "version", version, "zones", st.Zones,
		"data", st.DataSize, "size", size, "digest", dgst)
	if st.HashCollisions > 0 {
		log.Warn("digest collisions", "count", st.HashCollisions)
	}

	if cfg.Manifest == "" {
		return nil
	}

	m := newManifest(path, version, size, dgst, idx)
	if err := m.WriteFile(cfg.Manifest); err != nil {
		return err
	}
	log.Info("manifest", "path", cfg.Manifest)

	return nil
}

// writeArchive writes idx to path and returns the archive size and sha256
// digest, computed while writing.
func writeArchive(path string, w *archive.Writer, idx *archive.Index) (size int64, dgst digest.Digest, err error) {
	// validation errors must leave an existing file alone
	if err := w.Validate(idx); err != nil {
		return 0, "", err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", errs.ErrIOFailure, path, cerr)
		}
	}()

	digester := digest.Canonical.Digester()
	size, err = w.WriteArchive(io.MultiWriter(f, digester.Hash()), idx)
	if err != nil {
		return size, "", err
	}

	return size, digester.Digest(), nil
}
