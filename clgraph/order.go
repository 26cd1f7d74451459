package clgraph

import (
	"fmt"
	"sort"
	"strings"
)

// Check reports the first reference to a resource or parameter that is not declared, and any
// circular dependency between resources.
func (g *Graph) Check() error {
	for _, n := range g.Nodes() {
		for _, dep := range n.Deps() {
			if _, ok := g.nodes[dep]; ok || g.params[dep] {
				continue
			}

			return fmt.Errorf("%w: %s (%s) references %s", ErrDangling, n.LogicalID, n.Type, dep)
		}
	}

	_, err := g.Order()

	return err
}

// Order returns the logical ids in an order that creates every resource after the resources it
// depends on. Ties are broken by logical id so the order is deterministic.
func (g *Graph) Order() ([]string, error) {
	dependents := make(map[string][]string, len(g.nodes))
	inDegree := make(map[string]int, len(g.nodes))

	for id := range g.nodes {
		inDegree[id] = 0
	}

	for id, n := range g.nodes {
		for _, dep := range n.Deps() {
			if _, ok := g.nodes[dep]; ok {
				dependents[dep] = append(dependents[dep], id)
				inDegree[id]++
			}
		}
	}

	var queue []string
	for id, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	sort.Strings(queue)

	order := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, next := range dependents[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
				sort.Strings(queue)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, g.cycle()
	}

	return order, nil
}

// cycle finds a circle in the graph and describes it.
func (g *Graph) cycle() error {
	visited := map[string]bool{}
	onPath := map[string]bool{}

	var path []string
	var found []string

	var visit func(id string) bool
	visit = func(id string) bool {
		visited[id], onPath[id] = true, true
		path = append(path, id)

		for _, dep := range g.nodes[id].Deps() {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}

			if onPath[dep] {
				for i, p := range path {
					if p == dep {
						found = append(append([]string{}, path[i:]...), dep)

						break
					}
				}

				return true
			}

			if !visited[dep] && visit(dep) {
				return true
			}
		}

		onPath[id] = false
		path = path[:len(path)-1]

		return false
	}

	for _, n := range g.Nodes() {
		if !visited[n.LogicalID] && visit(n.LogicalID) {
			break
		}
	}

	return fmt.Errorf("%w: %s", ErrCycle, strings.Join(found, " -> "))
}
