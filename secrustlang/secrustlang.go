// Package secrustlang declares the annotation surface consumed by the
// verifier: pre, post, invariant, buildCFG and old. They are ordinary,
// no-op Go functions, so a source file that imports this package and
// calls them compiles and runs as a normal (and trivially correct) Go
// program; the verifier never executes them, only parses the calls out
// of the AST.
package secrustlang

// Pre declares a precondition. cond is never evaluated for truth by Go;
// the verifier reads its syntax tree instead.
func Pre(cond bool) {}

// Post declares a postcondition, checked by the verifier to hold on
// every execution that reaches the end of the annotated function.
func Post(cond bool) {}

// Invariant declares a loop invariant at the point of the call. It must
// hold on entry to the loop and be re-established by every iteration.
func Invariant(cond bool) {}

// BuildCFG is a directive consumed by external tooling (graph dumps,
// coverage reports); it has no effect on verification.
func BuildCFG(args ...any) {}

// Old is reserved for two-state (pre/post) history expressions. No
// verifier behaviour is defined for it yet.
func Old(v any) any { return v }
