package solve

import (
	"go/ast"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// maxCombinations caps the total size of the Cartesian product this
// package is willing to brute force. collectVars already bounds the
// variable *count*; this additionally bounds the per-variable range
// actually searched, since (2*bound+1)^n explodes fast even for small
// n. When the caller's bound would blow this cap, the effective bound
// is shrunk and the search runs to completion over the smaller range —
// a bounded-soundness tradeoff the package doc and DESIGN.md both call
// out explicitly, standing in for Z3's absent unbounded reasoning.
const maxCombinations = 2_000_000

// search looks for an assignment of vars, each drawn from
// [-effBound, effBound], under which expr evaluates to true (non-zero).
// It returns the first such assignment found, enumerating in a fixed,
// deterministic order so results are reproducible across runs.
//
// visited is a bitset over the flattened assignment index. Nothing
// about a one-shot exhaustive sweep strictly requires it (each index is
// visited exactly once by construction), but keeping it mirrors the
// gen/kill bitset bookkeeping this package's dataflow-adjacent search
// is modelled on, and gives a single place to extend towards
// incremental/backtracking search later without changing the indexing
// scheme.
func search(expr ast.Expr, vars []string, bound int64) (map[string]int64, bool, error) {
	if len(vars) == 0 {
		v, err := eval(expr, map[string]int64{})
		if err != nil {
			return nil, false, err
		}
		if v != 0 {
			return map[string]int64{}, true, nil
		}
		return nil, false, nil
	}

	effBound := shrinkBound(bound, len(vars))
	width := 2*effBound + 1
	total := int64(1)
	for range vars {
		total *= width
	}

	visited := bitset.New(uint(total))
	env := make(map[string]int64, len(vars))
	digits := make([]int64, len(vars))

	for idx := int64(0); idx < total; idx++ {
		if visited.Test(uint(idx)) {
			continue
		}
		visited.Set(uint(idx))

		rem := idx
		for i := range vars {
			d := rem % width
			rem /= width
			digits[i] = d - effBound
			env[vars[i]] = digits[i]
		}

		v, err := eval(expr, env)
		if err != nil {
			return nil, false, err
		}
		if v != 0 {
			model := make(map[string]int64, len(vars))
			for i, name := range vars {
				model[name] = env[name]
			}
			return model, true, nil
		}
	}

	return nil, false, nil
}

// shrinkBound reduces bound, if necessary, so that (2*bound+1)^nVars
// stays within maxCombinations.
func shrinkBound(bound int64, nVars int) int64 {
	if bound < 0 {
		bound = -bound
	}
	width := 2*bound + 1
	total := math.Pow(float64(width), float64(nVars))
	if total <= maxCombinations {
		return bound
	}
	maxWidth := math.Pow(maxCombinations, 1/float64(nVars))
	shrunk := (int64(maxWidth) - 1) / 2
	if shrunk < 1 {
		shrunk = 1
	}
	return shrunk
}
