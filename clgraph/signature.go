package clgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Edge is a property reference between two resource types.
type Edge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

func (e Edge) String() string { return e.From + " -> " + e.To }

// Signature describes the structure of a graph without its logical ids: how many resources there are of
// each type, how many property references there are between each pair of types and which types each type
// waits for. Waiting is transitive over references and explicit ordering, so the same creation order
// declared through different dependencies yields the same signature.
type Signature struct {
	Types map[string]int `yaml:"types"`
	Edges map[Edge]int   `yaml:"-"`
	Waits map[Edge]bool  `yaml:"-"`
}

// Signature of the graph.
func (g *Graph) Signature() Signature {
	sig := Signature{Types: g.CountByType(), Edges: map[Edge]int{}, Waits: map[Edge]bool{}}

	for _, n := range g.nodes {
		for _, ref := range n.Refs {
			to, ok := g.nodes[ref]
			if !ok {
				continue // parameters
			}

			sig.Edges[Edge{From: n.Type, To: to.Type}]++
		}

		for id := range g.reachable(n.LogicalID) {
			sig.Waits[Edge{From: n.Type, To: g.nodes[id].Type}] = true
		}
	}

	return sig
}

// reachable returns the ids of every node that node 'id' is created after, directly or transitively.
func (g *Graph) reachable(id string) map[string]bool {
	seen := map[string]bool{}
	stack := []string{id}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, dep := range g.nodes[cur].Deps() {
			if _, ok := g.nodes[dep]; !ok || seen[dep] {
				continue
			}

			seen[dep] = true
			stack = append(stack, dep)
		}
	}

	delete(seen, id)

	return seen
}

// Diff lists the differences with signature 'other', sorted. It is empty if both are equal.
func (s Signature) Diff(other Signature) []string {
	var diffs []string

	for _, typ := range lo.Uniq(append(lo.Keys(s.Types), lo.Keys(other.Types)...)) {
		if a, b := s.Types[typ], other.Types[typ]; a != b {
			diffs = append(diffs, fmt.Sprintf("%s: %d != %d", typ, a, b))
		}
	}

	for _, edge := range lo.Uniq(append(lo.Keys(s.Edges), lo.Keys(other.Edges)...)) {
		if a, b := s.Edges[edge], other.Edges[edge]; a != b {
			diffs = append(diffs, fmt.Sprintf("%s: %d != %d", edge, a, b))
		}
	}

	for _, edge := range lo.Uniq(append(lo.Keys(s.Waits), lo.Keys(other.Waits)...)) {
		if a, b := s.Waits[edge], other.Waits[edge]; a != b {
			diffs = append(diffs, fmt.Sprintf("%s waits for %s: %t != %t", edge.From, edge.To, a, b))
		}
	}

	sort.Strings(diffs)

	return diffs
}

// Equivalent returns an error describing every difference in the structure of 'a' and 'b'.
func Equivalent(a, b *Graph) error {
	if diffs := a.Signature().Diff(b.Signature()); len(diffs) > 0 {
		return fmt.Errorf("%w: %s", ErrNotEquivalent, strings.Join(diffs, ", "))
	}

	return nil
}
