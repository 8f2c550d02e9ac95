// Package overload implements call-site overload resolution: filtering
// candidates by arity (accounting for defaulted parameters), summing
// per-argument conversion cost, and reporting either a unique winner, "no
// matching overload", or "ambiguous between A and B".
package overload

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/convert"
	"github.com/angelscript-go/asc/internal/types"
)

// Arg is one call-site argument: its type, and (for a named argument) the
// parameter name it targets.
type Arg struct {
	Type types.DataType
	Name string // empty for a positional argument
}

// Candidate pairs a FunctionDef with the ConvertContext needed to score it
// (every candidate in one call may, in principle, belong to a different
// receiver type, e.g. opAdd vs opAdd_r on two different operand types).
type Candidate struct {
	Fn  *types.FunctionDef
	Ctx convert.Context
}

// scored is a Candidate that survived filtering, with its total cost and
// the per-argument conversions that produced it.
type scored struct {
	Candidate
	total       int
	conversions []convert.Conversion
}

// Resolve scores every candidate against args and returns the unique
// lowest-cost winner. An exact match (total cost 0, whether or not
// trailing parameters fall back to their defaults) short-circuits the
// rest of the scoring as soon as it's
// found, matching AngelScript's own "first all-exact-match wins
// immediately" behavior.
func Resolve(candidates []Candidate, args []Arg) (*types.FunctionDef, error) {
	var feasible []scored

	for _, c := range candidates {
		s, ok := score(c, args)
		if !ok {
			continue
		}
		if s.total == 0 {
			return s.Fn, nil // exact-match shortcut
		}
		feasible = append(feasible, s)
	}

	if len(feasible) == 0 {
		return nil, fmt.Errorf("no matching overload for %d argument(s)", len(args))
	}

	best := feasible[0]
	var tied []scored
	tied = append(tied, best)
	for _, s := range feasible[1:] {
		switch {
		case s.total < best.total:
			best = s
			tied = tied[:0]
			tied = append(tied, s)
		case s.total == best.total:
			tied = append(tied, s)
		}
	}

	if len(tied) > 1 {
		return nil, fmt.Errorf("ambiguous overload: %d candidates tie at cost %d", len(tied), best.total)
	}
	return best.Fn, nil
}

// score filters a candidate by arity (positional+named args must fit
// within param count, with every unfilled trailing param defaulted) and
// sums its per-argument conversion cost. Named arguments bind by name
// regardless of position; once an argument is matched, its parameter slot
// is considered filled for the defaults check.
func score(c Candidate, args []Arg) (scored, bool) {
	fn := c.Fn
	filled := make([]bool, len(fn.Params))
	costs := make([]convert.Conversion, len(args))

	positional := 0
	for i, a := range args {
		var slot int
		if a.Name != "" {
			idx := paramIndexByName(fn, a.Name)
			if idx < 0 || filled[idx] {
				return scored{}, false
			}
			slot = idx
		} else {
			for positional < len(fn.Params) && filled[positional] {
				positional++
			}
			if positional >= len(fn.Params) {
				return scored{}, false
			}
			slot = positional
			positional++
		}
		conv, ok := convert.Convert(a.Type, fn.Params[slot].Type, c.Ctx, false)
		if !ok {
			return scored{}, false
		}
		filled[slot] = true
		costs[i] = conv
	}

	for i, p := range fn.Params {
		if !filled[i] && !p.HasDefault {
			return scored{}, false
		}
	}

	total := 0
	for _, conv := range costs {
		total += conv.Cost
	}
	return scored{Candidate: c, total: total, conversions: costs}, true
}

func paramIndexByName(fn *types.FunctionDef, name string) int {
	for i, p := range fn.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}
