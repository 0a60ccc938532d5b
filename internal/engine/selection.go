package engine

import (
	"fmt"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

// ResolveSelection picks the named records out of subset, in the order the names were given.
// At most candy.MaxSelection distinct names are accepted and each must be in subset.
func ResolveSelection(subset []candy.Record, names []string) ([]candy.Record, error) {
	if len(names) > candy.MaxSelection {
		return nil, fmt.Errorf("%w: %d names, at most %d allowed", candy.ErrInvalidSelectionSize, len(names), candy.MaxSelection)
	}

	byName := make(map[string]candy.Record, len(subset))
	for _, r := range subset {
		byName[r.Name] = r
	}

	seen := make(map[string]bool, len(names))
	out := make([]candy.Record, 0, len(names))
	for _, n := range names {
		if seen[n] {
			return nil, fmt.Errorf("%w: %q selected twice", candy.ErrInvalidSelectionSize, n)
		}
		seen[n] = true

		r, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", candy.ErrUnknownCandy, n)
		}
		out = append(out, r)
	}
	return out, nil
}
