package curriculum

import (
	"fmt"
	"strings"
)

// Validate performs structural checks on the graph.
// Returns a combined error describing all problems found, or nil if valid.
func (g *Graph) Validate() error {
	var errs []string

	idSet := make(map[string]bool, len(g.concepts))
	for _, c := range g.concepts {
		if idSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate concept ID: %q", c.ID))
		}
		idSet[c.ID] = true
	}

	// Level indices must start at 1 and be contiguous.
	for i, l := range g.levels {
		if l.Index != i+1 {
			errs = append(errs, fmt.Sprintf("level indices must be contiguous from 1, got %d at position %d", l.Index, i))
		}
		if l.UnlockThreshold <= 0 || l.UnlockThreshold > 1.0 {
			errs = append(errs, fmt.Sprintf("level %d: UnlockThreshold must be in (0, 1.0], got %f", l.Index, l.UnlockThreshold))
		}
		if len(l.ConceptIDs) == 0 {
			errs = append(errs, fmt.Sprintf("level %d has no concepts", l.Index))
		}
	}

	// Every level concept must exist and live on that level.
	assigned := make(map[string]bool, len(g.concepts))
	for _, l := range g.levels {
		for _, id := range l.ConceptIDs {
			c, ok := g.byID[id]
			if !ok {
				errs = append(errs, fmt.Sprintf("level %d references nonexistent concept %q", l.Index, id))
				continue
			}
			if c.LevelIndex != l.Index {
				errs = append(errs, fmt.Sprintf("concept %q declares level %d but is listed on level %d", id, c.LevelIndex, l.Index))
			}
			if assigned[id] {
				errs = append(errs, fmt.Sprintf("concept %q appears in more than one level", id))
			}
			assigned[id] = true
		}
	}

	// Every concept must be placed on some level.
	for _, c := range g.concepts {
		if !assigned[c.ID] {
			errs = append(errs, fmt.Sprintf("concept %q is not listed on any level", c.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
