// Package filter narrows an already-loaded recipe list for display. It is a
// pure function of the list and the active selections; it never touches the
// store.
package filter

import (
	"strings"

	"github.com/receitinhas/backend/internal/model"
)

// Sentinel values meaning "no facet selected".
const (
	AllOccasions    = "Todas"
	AllDifficulties = "Todas"
	AllTimes        = "Todos"
)

// Params are the active filter selections. Zero values and the sentinels
// both disable their facet.
type Params struct {
	Query           string
	Occasion        string
	Difficulty      string
	PreparationTime string
}

// IsZero reports whether no filter is active.
func (p Params) IsZero() bool {
	return p.Query == "" &&
		(p.Occasion == "" || p.Occasion == AllOccasions) &&
		(p.Difficulty == "" || p.Difficulty == AllDifficulties) &&
		(p.PreparationTime == "" || p.PreparationTime == AllTimes)
}

// Apply returns the subset of recipes matching every active predicate, in
// the input order. The predicates are commutative; there is no ranking. An
// empty result is valid — callers distinguish "no matches" from "no recipes"
// by looking at the unfiltered input.
func Apply(recipes []model.Recipe, p Params) []model.Recipe {
	out := make([]model.Recipe, 0, len(recipes))
	query := strings.ToLower(p.Query)
	for _, r := range recipes {
		if query != "" && !strings.Contains(strings.ToLower(r.Title), query) {
			continue
		}
		if p.Occasion != "" && p.Occasion != AllOccasions && r.Occasion != p.Occasion {
			continue
		}
		if p.Difficulty != "" && p.Difficulty != AllDifficulties && r.Difficulty != p.Difficulty {
			continue
		}
		if p.PreparationTime != "" && p.PreparationTime != AllTimes && r.PreparationTime != p.PreparationTime {
			continue
		}
		out = append(out, r)
	}
	return out
}
