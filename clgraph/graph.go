// Package clgraph reads the resource graph from a synthesized CloudFormation template. It checks the graph
// for dangling references and cycles, orders it for creation and compares the structure of two graphs.
package clgraph

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// metadataType is the type of the resource the cdk adds for its own bookkeeping.
const metadataType = "AWS::CDK::Metadata"

var (
	// ErrMalformed is returned when the template can't be read as a graph.
	ErrMalformed = errors.New("malformed template")
	// ErrDangling is returned when a resource references something that is not declared.
	ErrDangling = errors.New("dangling reference")
	// ErrCycle is returned when resources depend on each other in a circle.
	ErrCycle = errors.New("circular dependency")
	// ErrNotEquivalent is returned when two graphs differ in structure.
	ErrNotEquivalent = errors.New("graphs are not equivalent")
)

// Node is a resource of the graph.
type Node struct {
	LogicalID string   `yaml:"id"`
	Type      string   `yaml:"type"`
	Refs      []string `yaml:"refs,omitempty"`       // referenced through properties, sorted
	DependsOn []string `yaml:"depends_on,omitempty"` // ordered explicitly, sorted
}

// Deps returns every node this node has to be created after.
func (n *Node) Deps() []string {
	deps := lo.Uniq(append(append([]string{}, n.Refs...), n.DependsOn...))
	sort.Strings(deps)

	return deps
}

// Graph of the resources in a template.
type Graph struct {
	nodes  map[string]*Node
	params map[string]bool
}

// FromJSON reads a graph from the template's json encoding.
func FromJSON(data []byte) (*Graph, error) {
	var tmpl map[string]any
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return FromTemplate(tmpl)
}

// FromTemplate reads the graph from a decoded template. The cdk's metadata resource is not part of it.
func FromTemplate(tmpl map[string]any) (*Graph, error) {
	g := &Graph{nodes: map[string]*Node{}, params: map[string]bool{}}

	params, _ := tmpl["Parameters"].(map[string]any)
	for name := range params {
		g.params[name] = true
	}

	resources, ok := tmpl["Resources"].(map[string]any)
	if !ok && tmpl["Resources"] != nil {
		return nil, fmt.Errorf("%w: resources is not an object", ErrMalformed)
	}

	for id, v := range resources {
		res, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: resource %s is not an object", ErrMalformed, id)
		}

		typ, _ := res["Type"].(string)
		if typ == "" {
			return nil, fmt.Errorf("%w: resource %s has no type", ErrMalformed, id)
		}

		if typ == metadataType {
			continue
		}

		deps, err := dependsOn(res["DependsOn"])
		if err != nil {
			return nil, fmt.Errorf("%w: resource %s: %w", ErrMalformed, id, err)
		}

		refs := map[string]bool{}
		collectRefs(res["Properties"], refs)

		g.nodes[id] = &Node{
			LogicalID: id,
			Type:      typ,
			Refs:      sorted(refs),
			DependsOn: deps,
		}
	}

	return g, nil
}

// Len is the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns the node with logical id 'id'.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]

	return n, ok
}

// Nodes returns all nodes sorted by logical id.
func (g *Graph) Nodes() []*Node {
	ids := lo.Keys(g.nodes)
	sort.Strings(ids)

	return lo.Map(ids, func(id string, _ int) *Node { return g.nodes[id] })
}

// CountByType counts the nodes per resource type.
func (g *Graph) CountByType() map[string]int {
	return lo.CountValuesBy(lo.Values(g.nodes), func(n *Node) string { return n.Type })
}

// OfType returns the nodes of resource type 'typ', sorted by logical id.
func (g *Graph) OfType(typ string) []*Node {
	return lo.Filter(g.Nodes(), func(n *Node, _ int) bool { return n.Type == typ })
}

// dependsOn reads the explicit ordering of a resource, it is either a string or a list of them.
func dependsOn(v any) ([]string, error) {
	switch dv := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{dv}, nil
	case []any:
		deps := make([]string, 0, len(dv))
		for _, d := range dv {
			s, ok := d.(string)
			if !ok {
				return nil, fmt.Errorf("depends on non-string %v", d)
			}

			deps = append(deps, s)
		}

		sort.Strings(deps)

		return lo.Uniq(deps), nil
	default:
		return nil, fmt.Errorf("unexpected depends on %T", v)
	}
}

// subVar matches the variables in a Fn::Sub string.
var subVar = regexp.MustCompile(`\$\{([^!}][^}]*)\}`)

// collectRefs walks a property value and records every logical id it references.
func collectRefs(v any, refs map[string]bool) {
	switch vv := v.(type) {
	case []any:
		for _, e := range vv {
			collectRefs(e, refs)
		}
	case map[string]any:
		if len(vv) == 1 {
			if collectIntrinsic(vv, refs) {
				return
			}
		}

		for _, e := range vv {
			collectRefs(e, refs)
		}
	}
}

// collectIntrinsic records the reference of a single key intrinsic function. It reports whether the
// value was fully handled.
func collectIntrinsic(fn map[string]any, refs map[string]bool) bool {
	if ref, ok := fn["Ref"].(string); ok {
		addRef(ref, refs)

		return true
	}

	if att, ok := fn["Fn::GetAtt"]; ok {
		switch av := att.(type) {
		case []any:
			if len(av) > 0 {
				id, _ := av[0].(string)
				addRef(id, refs)
			}
		case string:
			id, _, _ := strings.Cut(av, ".")
			addRef(id, refs)
		}

		return true
	}

	if sub, ok := fn["Fn::Sub"]; ok {
		var str string
		vars := map[string]any{}

		switch sv := sub.(type) {
		case string:
			str = sv
		case []any:
			if len(sv) > 0 {
				str, _ = sv[0].(string)
			}

			if len(sv) > 1 {
				vars, _ = sv[1].(map[string]any)
				collectRefs(sv[1], refs)
			}
		}

		for _, m := range subVar.FindAllStringSubmatch(str, -1) {
			id, _, _ := strings.Cut(m[1], ".")
			if _, local := vars[id]; !local {
				addRef(id, refs)
			}
		}

		return true
	}

	return false
}

func addRef(id string, refs map[string]bool) {
	if id == "" || strings.HasPrefix(id, "AWS::") {
		return // pseudo parameters are always known
	}

	refs[id] = true
}

func sorted(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}

	s := lo.Keys(set)
	sort.Strings(s)

	return s
}
