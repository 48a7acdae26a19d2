// Package contracts loads the external-method contract table: the
// pre/postconditions assumed around a call to a function whose body the
// verifier does not (or cannot) walk, per spec.md §4.1's "external
// method calls" rule. The original keeps this table as a JSON file
// (src/config/conditions.json); no JSON-schema-validation library
// appears anywhere in the retrieved pack, so this is deliberately built
// on the standard library's encoding/json rather than reaching for one
// (see DESIGN.md).
package contracts

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Contract is one external method's stated behaviour: the CFG builder
// places its preconditions just before the call and its postconditions
// just after it, as Precondition/Postcondition cut points. Like any cut
// point, each clause is the goal of the basic path that ends at it and
// an assumption of the path that starts from it.
type Contract struct {
	Name           string   `json:"name"`
	Preconditions  []string `json:"preconditions"`
	Postconditions []string `json:"postconditions"`
}

// Table maps a method name to its contract.
type Table map[string]Contract

// fileFormat is the on-disk shape: {"external_methods": [...]}.
type fileFormat struct {
	ExternalMethods []Contract `json:"external_methods"`
}

// Load reads the contract table from path. A missing file is not an
// error: it yields an empty table and the caller is expected to log a
// warning, matching the original's "missing conditions file is
// tolerated, external calls are just left unannotated" behaviour.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return nil, errors.Wrapf(err, "reading contract table %s", path)
	}
	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, errors.Wrapf(err, "parsing contract table %s", path)
	}
	t := make(Table, len(ff.ExternalMethods))
	for _, c := range ff.ExternalMethods {
		t[c.Name] = c
	}
	return t, nil
}

// Lookup returns the contract for name, if the table has one. The
// returned Contract is a value copy: callers may freely read it without
// risk of mutating the table, matching spec.md's "contracts are
// immutable facts about an external method" framing.
func (t Table) Lookup(name string) (Contract, bool) {
	c, ok := t[name]
	return c, ok
}
