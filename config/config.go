// Package config holds the verifier's tunables. There is no
// configuration framework in the pack's graph-analysis repos for
// library-internal knobs of this size, so this is a plain struct with
// defaults, in the spirit of the teacher's own minimal dependency
// surface.
package config

// Config bundles the verifier's runtime tunables.
type Config struct {
	// ContractsPath is where the external-method contract table (see
	// the contracts package) is loaded from by convention.
	ContractsPath string

	// SolverBound is the absolute bound used by the solve package's
	// bounded integer search: free integer variables are searched in
	// [-SolverBound, SolverBound]. The original discharges to Z3, an
	// unbounded decision procedure; this bound is the documented
	// consequence of not having Z3 available (see solve's package
	// doc and DESIGN.md).
	SolverBound int64

	// DotDir is the base directory DOT graphs are written under when
	// requested, mirroring the original's "src/graphs/<file-stem>/"
	// convention.
	DotDir string

	// Verbose enables debug logging across cfg and verify.
	Verbose bool
}

// Default is the configuration used when the caller doesn't override
// anything explicitly.
var Default = Config{
	ContractsPath: "src/config/conditions.json",
	SolverBound:   1000,
	DotDir:        "src/graphs",
	Verbose:       false,
}
