package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

// TestEBNF verifies the EBNF encoding of spec §4.4's grammar: it parses as
// well-formed EBNF and every production reachable from Module is either
// defined or a literal/range, per golang.org/x/exp/ebnf's own verifier
// (the same check the Go spec's own grammar.txt is run through).
func TestEBNF(t *testing.T) {
	f, err := os.Open("vuur.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("vuur.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Module"); err != nil {
		t.Fatal(err)
	}
}
