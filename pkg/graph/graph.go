// Package graph provides a read-only view over a workflow's nodes and connections.
package graph

import (
	"github.com/dukex/operion-runner/pkg/models"
)

// Graph answers parent and disabled-state queries for a single workflow snapshot.
//
// It is safe for concurrent read access.
type Graph struct {
	nodes    map[string]*models.WorkflowNode
	order    []string            // node names in document order
	parents  map[string][]string // direct parents, connection order, deduplicated
	children map[string][]string
}

// New builds and validates a Graph. Validation rejects unknown or duplicate node names,
// malformed ports, self-loops and cycles.
func New(workflow *models.Workflow) (*Graph, error) {
	if workflow == nil {
		return nil, invalidf("workflow is nil")
	}

	g := &Graph{
		nodes:    make(map[string]*models.WorkflowNode, len(workflow.Nodes)),
		order:    make([]string, 0, len(workflow.Nodes)),
		parents:  make(map[string][]string),
		children: make(map[string][]string),
	}

	for _, node := range workflow.Nodes {
		if node == nil || node.Name == "" {
			return nil, invalidf("node name is required")
		}

		if _, exists := g.nodes[node.Name]; exists {
			return nil, invalidf("duplicate node name: %q", node.Name)
		}

		g.nodes[node.Name] = node
		g.order = append(g.order, node.Name)
	}

	for _, conn := range workflow.Connections {
		from, err := conn.SourceNode()
		if err != nil {
			return nil, invalidf("connection %q: source port %q: %v", conn.ID, conn.SourcePort, err)
		}

		to, err := conn.TargetNode()
		if err != nil {
			return nil, invalidf("connection %q: target port %q: %v", conn.ID, conn.TargetPort, err)
		}

		if _, ok := g.nodes[from]; !ok {
			return nil, invalidf("connection %q references unknown node %q", conn.ID, from)
		}

		if _, ok := g.nodes[to]; !ok {
			return nil, invalidf("connection %q references unknown node %q", conn.ID, to)
		}

		if from == to {
			return nil, &CycleError{Path: []string{from, to}}
		}

		g.parents[to] = appendUnique(g.parents[to], from)
		g.children[from] = appendUnique(g.children[from], to)
	}

	if err := g.validateAcyclic(); err != nil {
		return nil, err
	}

	return g, nil
}

// Node returns a node by name.
func (g *Graph) Node(name string) (*models.WorkflowNode, bool) {
	n, ok := g.nodes[name]

	return n, ok
}

// NodeNames returns all node names in document order.
func (g *Graph) NodeNames() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)

	return out
}

// ParentNodes returns the direct parents of a node in connection order.
func (g *Graph) ParentNodes(name string) []string {
	parents := g.parents[name]
	out := make([]string, len(parents))
	copy(out, parents)

	return out
}

// ChildNodes returns the direct children of a node in connection order.
func (g *Graph) ChildNodes(name string) []string {
	children := g.children[name]
	out := make([]string, len(children))
	copy(out, children)

	return out
}

// IsDisabled reports whether the node is disabled. Unknown nodes are reported as disabled
// so traversals never select them.
func (g *Graph) IsDisabled(name string) bool {
	node, ok := g.nodes[name]
	if !ok {
		return true
	}

	return node.Disabled
}

// TriggerNodes returns the enabled trigger nodes in document order.
func (g *Graph) TriggerNodes() []*models.WorkflowNode {
	var triggers []*models.WorkflowNode

	for _, name := range g.order {
		node := g.nodes[name]
		if node.IsTriggerNode() && !node.Disabled {
			triggers = append(triggers, node)
		}
	}

	return triggers
}

// NodesHaveIssues reports whether any enabled node has unresolved issues.
func (g *Graph) NodesHaveIssues() bool {
	for _, node := range g.nodes {
		if !node.Disabled && node.HasIssues() {
			return true
		}
	}

	return false
}

// validateAcyclic runs an iterative depth-first search over child edges.
func (g *Graph) validateAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int, len(g.nodes))

	type frame struct {
		name string
		next int
	}

	for _, root := range g.order {
		if state[root] != unvisited {
			continue
		}

		stack := []frame{{name: root}}
		state[root] = visiting

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.children[top.name]

			if top.next == len(children) {
				state[top.name] = done
				stack = stack[:len(stack)-1]

				continue
			}

			child := children[top.next]
			top.next++

			switch state[child] {
			case visiting:
				path := make([]string, 0, len(stack)+1)
				started := false

				for _, f := range stack {
					if f.name == child {
						started = true
					}

					if started {
						path = append(path, f.name)
					}
				}

				return &CycleError{Path: append(path, child)}
			case unvisited:
				state[child] = visiting
				stack = append(stack, frame{name: child})
			}
		}
	}

	return nil
}

func appendUnique(list []string, name string) []string {
	for _, existing := range list {
		if existing == name {
			return list
		}
	}

	return append(list, name)
}
