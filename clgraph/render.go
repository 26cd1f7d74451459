package clgraph

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"
	"gopkg.in/yaml.v3"
)

// Format of a rendered graph.
type Format string

const (
	// FormatDOT renders Graphviz DOT.
	FormatDOT Format = "dot"
	// FormatMermaid renders a Mermaid flowchart.
	FormatMermaid Format = "mermaid"
	// FormatYAML renders the nodes as yaml.
	FormatYAML Format = "yaml"
)

// Render writes the graph to 'w' in format 'f'. Without a format it renders DOT.
func (g *Graph) Render(w io.Writer, f Format) (err error) {
	var out []byte

	switch f {
	case "", FormatDOT:
		out = []byte(g.dot().String())
	case FormatMermaid:
		out = []byte(dot.MermaidGraph(g.dot(), dot.MermaidTopToBottom))
	case FormatYAML:
		if out, err = g.ToYAML(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format: %q", f)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}

	return nil
}

// dot builds the graph with an edge from every node to the nodes it depends on. Property references are
// solid, explicit ordering is dashed.
func (g *Graph) dot() *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")
	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})

	nodes := g.Nodes()
	for _, n := range nodes {
		graph.Node(n.LogicalID).Label(n.LogicalID + "\\n[" + n.Type + "]")
	}

	for _, n := range nodes {
		from := graph.Node(n.LogicalID)
		for _, ref := range n.Refs {
			if _, ok := g.nodes[ref]; ok {
				graph.Edge(from, graph.Node(ref))
			}
		}

		for _, dep := range n.DependsOn {
			if _, ok := g.nodes[dep]; ok {
				graph.Edge(from, graph.Node(dep)).Attr("style", "dashed")
			}
		}
	}

	return graph
}

// yamlGraph is the yaml encoding of a graph.
type yamlGraph struct {
	Resources []*Node        `yaml:"resources"`
	Types     map[string]int `yaml:"types"`
	Order     []string       `yaml:"order,omitempty"`
}

// ToYAML encodes the nodes with their type counts and their creation order, if there is one.
func (g *Graph) ToYAML() ([]byte, error) {
	order, _ := g.Order()

	data, err := yaml.Marshal(yamlGraph{Resources: g.Nodes(), Types: g.CountByType(), Order: order})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal yaml: %w", err)
	}

	return data, nil
}
