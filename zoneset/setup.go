package zoneset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arloliu/tzpack/errs"
)

const linkKeyword = "Link"

// Setup is the parsed content of a setup file.
type Setup struct {
	// Zones holds every zone to pack, including link names, in first-seen order.
	Zones *Set
	// Links maps a link name to the existing zone whose source bytes it reuses.
	Links map[string]string
}

// ParseSetup reads a setup file.
//
// Each line holds one zone identifier; surrounding whitespace is trimmed.
// Blank lines and lines starting with '#' are skipped. A line of the form
//
//	Link <target> <link name>
//
// follows the zic convention: it adds the link name to the zone list and
// records that its bytes come from the existing zone target, so
// "Link Asia/Kolkata Asia/Calcutta" packs Asia/Calcutta as a copy of
// Asia/Kolkata.
// Repeated identifiers keep their first position.
func ParseSetup(r io.Reader) (*Setup, error) {
	setup := &Setup{
		Zones: New(),
		Links: make(map[string]string),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] == linkKeyword {
			if len(fields) != 3 {
				return nil, fmt.Errorf("%w: line %d: want %q, got %q",
					errs.ErrInvalidSetupLine, lineNo, "Link <target> <link name>", line)
			}

			target, name := fields[1], fields[2]
			if target == name {
				return nil, fmt.Errorf("%w: line %d: %q links to itself", errs.ErrLinkCycle, lineNo, name)
			}

			if prev, ok := setup.Links[name]; ok && prev != target {
				return nil, fmt.Errorf("%w: line %d: %q already links to %q",
					errs.ErrInvalidSetupLine, lineNo, name, prev)
			}

			setup.Links[name] = target
			setup.Zones.Add(name)

			continue
		}

		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: line %d: unexpected whitespace in %q", errs.ErrInvalidSetupLine, lineNo, line)
		}

		setup.Zones.Add(line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading setup: %w", errs.ErrIOFailure, err)
	}

	return setup, nil
}

// ReadSetupFile opens and parses the setup file at path.
func ReadSetupFile(path string) (*Setup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}
	defer f.Close()

	setup, err := ParseSetup(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return setup, nil
}
