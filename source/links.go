package source

import (
	"fmt"
	"strings"

	"github.com/arloliu/tzpack/errs"
)

type linkFetcher struct {
	next  Fetcher
	links map[string]string
}

// WithLinks returns a Fetcher that resolves zone aliases before delegating to
// next. links maps an alias to the zone whose bytes it shares; chains of
// aliases are followed. With no links, next is returned as is.
func WithLinks(next Fetcher, links map[string]string) Fetcher {
	if len(links) == 0 {
		return next
	}

	return &linkFetcher{next: next, links: links}
}

// Resolve follows links from id to the zone that owns the source bytes.
func Resolve(id string, links map[string]string) (string, error) {
	seen := []string{id}
	cur := id
	for {
		target, ok := links[cur]
		if !ok {
			return cur, nil
		}

		for _, s := range seen {
			if s == target {
				return "", fmt.Errorf("%w: %s -> %s", errs.ErrLinkCycle, strings.Join(seen, " -> "), target)
			}
		}

		seen = append(seen, target)
		cur = target
	}
}

func (f *linkFetcher) Fetch(id string) ([]byte, error) {
	resolved, err := Resolve(id, f.links)
	if err != nil {
		return nil, err
	}

	data, err := f.next.Fetch(resolved)
	if err != nil && resolved != id {
		return nil, fmt.Errorf("link %s -> %s: %w", id, resolved, err)
	}

	return data, err
}
