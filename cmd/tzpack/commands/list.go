package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/arloliu/tzpack/archive"
	"github.com/arloliu/tzpack/internal/hash"
)

type listConfig struct {
	*cli.Command
	YAML bool `cli:"name=yaml aliases=y desc='print the listing as YAML'"`
}

// ListCommand returns the list subcommand.
func ListCommand() *cli.Command {
	cfg := &listConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Command, "list").
		WithAliases("ls").
		WithSynopsis("list [-yaml] <archive> - show the header and index of an archive").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *listConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: list requires 1 arg, got %d", cli.ErrUsage, len(args))
	}

	a, err := archive.OpenFile(args[0])
	if err != nil {
		return err
	}

	return writeListing(cc.Out, newListing(a), cfg.YAML)
}

// Listing is the printable form of an archive header and index.
type Listing struct {
	Version     string        `yaml:"version"`
	IndexOffset uint32        `yaml:"index_offset"`
	DataOffset  uint32        `yaml:"data_offset"`
	FinalOffset uint32        `yaml:"final_offset"`
	Trailer     int           `yaml:"trailer,omitempty"`
	Zones       []ListedEntry `yaml:"zones"`
}

// ListedEntry is one index entry of a Listing.
type ListedEntry struct {
	Name   string `yaml:"name"`
	Offset uint32 `yaml:"offset"`
	Length uint32 `yaml:"length"`
	XXHash string `yaml:"xxhash"`
}

func newListing(a *archive.Archive) *Listing {
	h := a.Header()
	l := &Listing{
		Version:     a.Version(),
		IndexOffset: h.IndexOffset,
		DataOffset:  h.DataOffset,
		FinalOffset: h.FinalOffset,
		Trailer:     len(a.Trailer()),
		Zones:       make([]ListedEntry, 0, a.Len()),
	}

	for e, data := range a.All() {
		l.Zones = append(l.Zones, ListedEntry{
			Name:   e.Name,
			Offset: e.Offset,
			Length: e.Length,
			XXHash: hash.Format(hash.Sum(data)),
		})
	}

	return l
}

func writeListing(w io.Writer, l *Listing, asYAML bool) error {
	if asYAML {
		data, err := yaml.Marshal(l)
		if err != nil {
			return fmt.Errorf("encoding listing: %w", err)
		}
		_, err = w.Write(data)

		return err
	}

	fmt.Fprintf(w, "version: %s\n", l.Version)
	fmt.Fprintf(w, "sections: index=%d data=%d final=%d\n", l.IndexOffset, l.DataOffset, l.FinalOffset)
	if l.Trailer > 0 {
		fmt.Fprintf(w, "trailer: %d bytes\n", l.Trailer)
	}
	fmt.Fprintf(w, "zones: %d\n", len(l.Zones))
	for _, z := range l.Zones {
		fmt.Fprintf(w, "%-40s %10d %8d %s\n", z.Name, z.Offset, z.Length, z.XXHash)
	}

	return nil
}
